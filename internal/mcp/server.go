// Package mcp implements the Model Context Protocol server for knotbook, so
// assistants can query and edit the contact data through tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/knotbook/internal/model"
	"github.com/ajitpratap0/knotbook/internal/models"
	"github.com/ajitpratap0/knotbook/internal/storage"
)

// Server wraps an MCPServer around a shared model manager. Tool handlers
// serialize model access with one mutex; the model itself is single-writer.
type Server struct {
	mcp    *mcpserver.MCPServer
	mu     sync.Mutex
	mgr    *model.Manager
	store  storage.Storage
	logger *slog.Logger
}

// NewServer creates a new MCP server over the given manager. store may be
// nil, in which case mutations are kept in memory only.
func NewServer(mgr *model.Manager, store storage.Storage, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{mgr: mgr, store: store, logger: logger}

	mcpSrv := mcpserver.NewMCPServer(
		"knotbook",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildAddPersonTool(), s.handleAddPerson)
	mcpSrv.AddTool(buildFindPersonsTool(), s.handleFindPersons)
	mcpSrv.AddTool(buildFindWeddingsTool(), s.handleFindWeddings)
	mcpSrv.AddTool(buildClearTagsTool(), s.handleClearTags)
	mcpSrv.AddTool(buildStatsTool(), s.handleStats)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleAddPerson is the exported handler for the "add_person" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleAddPerson(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleAddPerson(ctx, req)
}

// HandleFindPersons is the exported handler for the "find_persons" tool.
func (s *Server) HandleFindPersons(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleFindPersons(ctx, req)
}

// HandleFindWeddings is the exported handler for the "find_weddings" tool.
func (s *Server) HandleFindWeddings(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleFindWeddings(ctx, req)
}

// HandleClearTags is the exported handler for the "clear_tags" tool.
func (s *Server) HandleClearTags(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleClearTags(ctx, req)
}

// HandleStats is the exported handler for the "stats" tool.
func (s *Server) HandleStats(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleStats(ctx, req)
}

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// --- tool definitions ---

func buildAddPersonTool() mcpgo.Tool {
	return mcpgo.NewTool("add_person",
		mcpgo.WithDescription("Add a contact to the address book. Tags matching wedding names link the person to those weddings."),
		mcpgo.WithString("name",
			mcpgo.Required(),
			mcpgo.Description("Full name of the person"),
		),
		mcpgo.WithString("phone",
			mcpgo.Required(),
			mcpgo.Description("Phone number, digits only"),
		),
		mcpgo.WithString("email",
			mcpgo.Required(),
			mcpgo.Description("Email address"),
		),
		mcpgo.WithString("address",
			mcpgo.Description("Postal address"),
		),
		mcpgo.WithString("job",
			mcpgo.Description("Occupation"),
		),
		mcpgo.WithString("tags",
			mcpgo.Description("Comma-separated tag names"),
		),
	)
}

func buildFindPersonsTool() mcpgo.Tool {
	return mcpgo.NewTool("find_persons",
		mcpgo.WithDescription("Find contacts by name or tag keywords. Returns all contacts when no keywords are given."),
		mcpgo.WithString("name",
			mcpgo.Description("Name keywords, space separated"),
		),
		mcpgo.WithString("tag",
			mcpgo.Description("Tag keywords, space separated"),
		),
	)
}

func buildFindWeddingsTool() mcpgo.Tool {
	return mcpgo.NewTool("find_weddings",
		mcpgo.WithDescription("Find weddings by name keywords, including their participants. Returns all weddings when no keywords are given."),
		mcpgo.WithString("name",
			mcpgo.Description("Wedding name keywords, space separated"),
		),
	)
}

func buildClearTagsTool() mcpgo.Tool {
	return mcpgo.NewTool("clear_tags",
		mcpgo.WithDescription("Remove all tags from a contact and withdraw them from the weddings those tags linked."),
		mcpgo.WithString("name",
			mcpgo.Required(),
			mcpgo.Description("Full name of the person"),
		),
		mcpgo.WithString("phone",
			mcpgo.Required(),
			mcpgo.Description("Phone number, digits only"),
		),
		mcpgo.WithString("email",
			mcpgo.Required(),
			mcpgo.Description("Email address"),
		),
	)
}

func buildStatsTool() mcpgo.Tool {
	return mcpgo.NewTool("stats",
		mcpgo.WithDescription("Get book statistics: person, wedding and participant counts."),
	)
}

// --- tool handlers ---

func (s *Server) handleAddPerson(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	name := req.GetString("name", "")
	phone := req.GetString("phone", "")
	email := req.GetString("email", "")
	address := req.GetString("address", "")
	job := req.GetString("job", "")

	var tags []models.Tag
	for _, raw := range splitList(req.GetString("tags", "")) {
		t, err := models.NewTag(raw)
		if err != nil {
			return mcpgo.NewToolResultErrorf("invalid tag: %s", err.Error()), nil
		}
		tags = append(tags, t)
	}

	person := models.NewPerson(name, phone, email, address, job, tags)
	if err := person.Validate(); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mgr.AddPerson(person); err != nil {
		return mcpgo.NewToolResultErrorf("adding person: %s", err.Error()), nil
	}
	if err := s.save(); err != nil {
		return mcpgo.NewToolResultErrorf("saving: %s", err.Error()), nil
	}
	return toolResultJSON(map[string]any{"added": person})
}

func (s *Server) handleFindPersons(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	nameKw := splitList(req.GetString("name", ""))
	tagKw := splitList(req.GetString("tag", ""))

	s.mu.Lock()
	defer s.mu.Unlock()

	pred := model.PersonPredicate(model.ShowAllPersons)
	switch {
	case len(nameKw) > 0:
		pred = model.NameContainsKeywords(nameKw)
	case len(tagKw) > 0:
		pred = model.TagContainsKeywords(tagKw)
	}
	if err := s.mgr.UpdateFilteredPersons(pred); err != nil {
		return mcpgo.NewToolResultErrorf("filtering persons: %s", err.Error()), nil
	}
	return toolResultJSON(map[string]any{"persons": s.mgr.FilteredPersons().Items()})
}

func (s *Server) handleFindWeddings(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	nameKw := splitList(req.GetString("name", ""))

	s.mu.Lock()
	defer s.mu.Unlock()

	pred := model.WeddingPredicate(model.ShowAllWeddings)
	if len(nameKw) > 0 {
		pred = model.WeddingNameContainsKeywords(nameKw)
	}
	if err := s.mgr.UpdateFilteredWeddings(pred); err != nil {
		return mcpgo.NewToolResultErrorf("filtering weddings: %s", err.Error()), nil
	}
	return toolResultJSON(map[string]any{"weddings": s.mgr.FilteredWeddings().Items()})
}

func (s *Server) handleClearTags(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	probe := models.Person{
		Name:  req.GetString("name", ""),
		Phone: req.GetString("phone", ""),
		Email: req.GetString("email", ""),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var stored models.Person
	found := false
	for _, p := range s.mgr.AddressBook().Persons() {
		if p.SameIdentity(probe) {
			stored = p
			found = true
			break
		}
	}
	if !found {
		return mcpgo.NewToolResultError("person not found"), nil
	}

	edited, err := s.mgr.ClearAllTags(stored)
	if err != nil {
		return mcpgo.NewToolResultErrorf("clearing tags: %s", err.Error()), nil
	}
	s.mgr.SyncPersonEdit(stored, edited)
	if err := s.save(); err != nil {
		return mcpgo.NewToolResultErrorf("saving: %s", err.Error()), nil
	}
	return toolResultJSON(map[string]any{"person": edited})
}

func (s *Server) handleStats(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	persons := len(s.mgr.AddressBook().Persons())
	weddings := 0
	participants := 0
	for _, w := range s.mgr.WeddingBook().Weddings() {
		weddings++
		participants += w.Participants.Len()
	}
	return toolResultJSON(map[string]int{
		"persons":      persons,
		"weddings":     weddings,
		"participants": participants,
	})
}

// save flushes both books through the storage collaborator.
func (s *Server) save() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveAddressBook(s.mgr.AddressBook()); err != nil {
		return err
	}
	return s.store.SaveWeddingBook(s.mgr.WeddingBook())
}

// splitList splits a comma- or space-separated parameter into trimmed items.
func splitList(raw string) []string {
	return strings.FieldsFunc(raw, func(c rune) bool { return c == ',' || c == ' ' })
}
