package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// DateLayout is the wire and display format for wedding dates.
const DateLayout = "2006-01-02"

// Wedding is an immutable-shell value: name, date and venue never change
// after construction (edits replace the whole value), while the participant
// set is shared mutable state updated in place as person tags change.
//
// Weak equality is keyed on the name alone, so the wedding book never holds
// two weddings with the same name, while Equal also compares date, venue and the
// participant membership.
type Wedding struct {
	Name         string          `json:"name"`
	Date         string          `json:"date,omitempty"`
	Venue        string          `json:"venue,omitempty"`
	Participants *ParticipantSet `json:"participants,omitempty"`
}

// NewWedding builds a Wedding with an empty participant set.
func NewWedding(name, date, venue string) Wedding {
	return Wedding{Name: name, Date: date, Venue: venue, Participants: NewParticipantSet()}
}

// Validate checks that the name is usable as a tag target and the date, when
// present, parses as DateLayout.
func (w Wedding) Validate() error {
	if !tagNamePattern.MatchString(w.Name) {
		return fmt.Errorf("invalid wedding name %q: must be alphanumeric with optional hyphens or apostrophes", w.Name)
	}
	if w.Date != "" {
		if _, err := time.Parse(DateLayout, w.Date); err != nil {
			return fmt.Errorf("invalid wedding date %q: expected %s", w.Date, DateLayout)
		}
	}
	return nil
}

// SameIdentity reports weak equality: the names match.
func (w Wedding) SameIdentity(other Wedding) bool {
	return w.Name == other.Name
}

// Equal reports exact equality including participant membership.
func (w Wedding) Equal(other Wedding) bool {
	return w.Name == other.Name &&
		w.Date == other.Date &&
		w.Venue == other.Venue &&
		slices.Equal(w.Participants.keys(), other.Participants.keys())
}

func (w Wedding) String() string {
	s := w.Name
	if w.Date != "" {
		s += " on " + w.Date
	}
	if w.Venue != "" {
		s += " at " + w.Venue
	}
	return s
}

// ParticipantSet is a deduplicating set of borrowed Person references keyed
// by identity key. The persons it holds are the address book's values, not
// independent copies; Manager.SyncPersonEdit keeps them from going stale.
type ParticipantSet struct {
	members map[string]Person
}

// NewParticipantSet returns an empty set.
func NewParticipantSet(people ...Person) *ParticipantSet {
	s := &ParticipantSet{members: make(map[string]Person)}
	for _, p := range people {
		s.Add(p)
	}
	return s
}

// Add inserts the person, replacing any member with the same identity.
func (s *ParticipantSet) Add(p Person) {
	if s.members == nil {
		s.members = make(map[string]Person)
	}
	s.members[p.IdentityKey()] = p
}

// Remove drops the member with the person's identity, if present.
func (s *ParticipantSet) Remove(p Person) {
	delete(s.members, p.IdentityKey())
}

// Contains reports whether a member shares the person's identity.
func (s *ParticipantSet) Contains(p Person) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[p.IdentityKey()]
	return ok
}

// Len returns the number of members.
func (s *ParticipantSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// People returns the members ordered by identity key for deterministic output.
func (s *ParticipantSet) People() []Person {
	if s == nil {
		return nil
	}
	keys := s.keys()
	out := make([]Person, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.members[k])
	}
	return out
}

func (s *ParticipantSet) keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.members))
	for k := range s.members {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MarshalJSON encodes the set as an ordered array of persons.
func (s *ParticipantSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.People())
}

// UnmarshalJSON decodes an array of persons into the set.
func (s *ParticipantSet) UnmarshalJSON(data []byte) error {
	var people []Person
	if err := json.Unmarshal(data, &people); err != nil {
		return err
	}
	s.members = make(map[string]Person, len(people))
	for _, p := range people {
		s.Add(p)
	}
	return nil
}
