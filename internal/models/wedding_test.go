package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWedding_Validate(t *testing.T) {
	w := NewWedding("Smith-Jones", "2026-10-17", "Marina Bay")
	require.NoError(t, w.Validate())

	noDate := NewWedding("Smith-Jones", "", "")
	require.NoError(t, noDate.Validate())

	badDate := NewWedding("Smith-Jones", "17/10/2026", "")
	assert.Error(t, badDate.Validate())

	badName := NewWedding("", "", "")
	assert.Error(t, badName.Validate())
}

func TestWedding_Identity(t *testing.T) {
	a := NewWedding("Smith-Jones", "2026-10-17", "Marina Bay")
	b := NewWedding("Smith-Jones", "2027-01-01", "Sentosa")
	c := NewWedding("Lee-Wong", "2026-10-17", "Marina Bay")

	assert.True(t, a.SameIdentity(b), "same name is the same wedding")
	assert.False(t, a.SameIdentity(c))
	assert.False(t, a.Equal(b))
}

func TestParticipantSet_DeduplicatesByIdentity(t *testing.T) {
	alice := testPerson("Alice", "Smith-Jones")
	aliceEdited := alice
	aliceEdited.Job = "baker"

	set := NewParticipantSet()
	set.Add(alice)
	set.Add(aliceEdited)

	require.Equal(t, 1, set.Len(), "weakly-equal persons share one slot")
	assert.True(t, set.Contains(alice))
	assert.True(t, set.Contains(aliceEdited))
	// the last add wins the slot
	assert.Equal(t, "baker", set.People()[0].Job)
}

func TestParticipantSet_Remove(t *testing.T) {
	alice := testPerson("Alice")
	bob := testPerson("Bob")

	set := NewParticipantSet(alice, bob)
	require.Equal(t, 2, set.Len())

	set.Remove(alice)
	assert.Equal(t, 1, set.Len())
	assert.False(t, set.Contains(alice))
	assert.True(t, set.Contains(bob))

	// removing an absent person is a no-op
	set.Remove(alice)
	assert.Equal(t, 1, set.Len())
}

func TestParticipantSet_NilSafety(t *testing.T) {
	var set *ParticipantSet
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Contains(testPerson("Alice")))
	assert.Empty(t, set.People())
}

func TestWedding_JSONRoundTrip(t *testing.T) {
	w := NewWedding("Smith-Jones", "2026-10-17", "Marina Bay")
	w.Participants.Add(testPerson("Alice", "Smith-Jones"))
	w.Participants.Add(testPerson("Bob", "Smith-Jones"))

	data, err := json.Marshal(w)
	require.NoError(t, err)

	var got Wedding
	require.NoError(t, json.Unmarshal(data, &got))

	assert.True(t, w.Equal(got))
	assert.Equal(t, 2, got.Participants.Len())
}

func TestWedding_EqualComparesParticipants(t *testing.T) {
	a := NewWedding("Smith-Jones", "2026-10-17", "")
	b := NewWedding("Smith-Jones", "2026-10-17", "")
	require.True(t, a.Equal(b))

	a.Participants.Add(testPerson("Alice"))
	assert.False(t, a.Equal(b))

	b.Participants.Add(testPerson("Alice"))
	assert.True(t, a.Equal(b))
}
