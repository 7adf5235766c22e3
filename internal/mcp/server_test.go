package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/knotbook/internal/model"
	"github.com/ajitpratap0/knotbook/internal/models"
)

func testMCPServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewServer(model.NewEmptyManager(logger), nil, logger)
}

func callReq(args map[string]any) mcpgo.CallToolRequest {
	req := mcpgo.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcpgo.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcpgo.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func addAlice(t *testing.T, s *Server, tags string) {
	t.Helper()
	res, err := s.HandleAddPerson(context.Background(), callReq(map[string]any{
		"name":  "Alice",
		"phone": "94351253",
		"email": "alice@example.com",
		"job":   "florist",
		"tags":  tags,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
}

func TestHandleAddPerson(t *testing.T) {
	s := testMCPServer(t)
	addAlice(t, s, "Smith-Jones,vendors")

	require.Len(t, s.mgr.AddressBook().Persons(), 1)
	p := s.mgr.AddressBook().Persons()[0]
	assert.Equal(t, "Alice", p.Name)
	assert.Len(t, p.Tags, 2)

	// weakly equal duplicate
	res, err := s.HandleAddPerson(context.Background(), callReq(map[string]any{
		"name":  "ALICE",
		"phone": "94351253",
		"email": "alice@example.com",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleAddPerson_Invalid(t *testing.T) {
	s := testMCPServer(t)

	res, err := s.HandleAddPerson(context.Background(), callReq(map[string]any{
		"name":  "Alice",
		"phone": "12",
		"email": "alice@example.com",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "short phone is rejected")

	res, err = s.HandleAddPerson(context.Background(), callReq(map[string]any{
		"name":  "Alice",
		"phone": "94351253",
		"email": "alice@example.com",
		"tags":  "bad tag!",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "invalid tag name is rejected")
}

func TestHandleFindPersons(t *testing.T) {
	s := testMCPServer(t)
	addAlice(t, s, "vendors")
	res, err := s.HandleAddPerson(context.Background(), callReq(map[string]any{
		"name":  "Bob",
		"phone": "87654321",
		"email": "bob@example.com",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	find := func(args map[string]any) []models.Person {
		res, err := s.HandleFindPersons(context.Background(), callReq(args))
		require.NoError(t, err)
		require.False(t, res.IsError)
		var out struct {
			Persons []models.Person `json:"persons"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		return out.Persons
	}

	assert.Len(t, find(nil), 2, "no keywords returns everything")
	byName := find(map[string]any{"name": "alice"})
	require.Len(t, byName, 1)
	assert.Equal(t, "Alice", byName[0].Name)
	byTag := find(map[string]any{"tag": "vendors"})
	require.Len(t, byTag, 1)
	assert.Equal(t, "Alice", byTag[0].Name)
	assert.Empty(t, find(map[string]any{"name": "carol"}))
}

func TestHandleFindWeddings(t *testing.T) {
	s := testMCPServer(t)

	alice := models.NewPerson("Alice", "94351253", "alice@example.com", "", "", nil)
	w := models.NewWedding("Smith-Jones", "2026-10-17", "Marina Bay")
	w.Participants.Add(alice)
	require.NoError(t, s.mgr.AddWedding(w))
	require.NoError(t, s.mgr.AddWedding(models.NewWedding("Lee-Wong", "", "")))

	find := func(args map[string]any) []models.Wedding {
		res, err := s.HandleFindWeddings(context.Background(), callReq(args))
		require.NoError(t, err)
		require.False(t, res.IsError)
		var out struct {
			Weddings []models.Wedding `json:"weddings"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		return out.Weddings
	}

	assert.Len(t, find(nil), 2)
	matched := find(map[string]any{"name": "smith-jones"})
	require.Len(t, matched, 1)
	assert.Equal(t, "Smith-Jones", matched[0].Name)
	assert.Equal(t, 1, matched[0].Participants.Len(), "participants ride along in results")
}

func TestHandleClearTags(t *testing.T) {
	s := testMCPServer(t)
	addAlice(t, s, "Smith-Jones")

	w := models.NewWedding("Smith-Jones", "", "")
	w.Participants.Add(s.mgr.AddressBook().Persons()[0])
	require.NoError(t, s.mgr.AddWedding(w))

	res, err := s.HandleClearTags(context.Background(), callReq(map[string]any{
		"name":  "Alice",
		"phone": "94351253",
		"email": "alice@example.com",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var out struct {
		Person models.Person `json:"person"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Empty(t, out.Person.Tags)
	assert.Equal(t, "florist", out.Person.Job, "other fields untouched")

	assert.Equal(t, 0, s.mgr.WeddingBook().Weddings()[0].Participants.Len())
}

func TestHandleClearTags_NotFound(t *testing.T) {
	s := testMCPServer(t)

	res, err := s.HandleClearTags(context.Background(), callReq(map[string]any{
		"name":  "Nobody",
		"phone": "94351253",
		"email": "nobody@example.com",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleStats(t *testing.T) {
	s := testMCPServer(t)
	addAlice(t, s, "Smith-Jones")

	w := models.NewWedding("Smith-Jones", "", "")
	w.Participants.Add(s.mgr.AddressBook().Persons()[0])
	require.NoError(t, s.mgr.AddWedding(w))

	res, err := s.HandleStats(context.Background(), mcpgo.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var stats map[string]int
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &stats))
	assert.Equal(t, 1, stats["persons"])
	assert.Equal(t, 1, stats["weddings"])
	assert.Equal(t, 1, stats["participants"])
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList("a,b c"))
	assert.Empty(t, splitList(""))
}
