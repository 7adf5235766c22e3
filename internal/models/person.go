package models

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\d{3,}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)
)

// Person is an immutable value record for one contact. Construct values with
// NewPerson so the tag set is normalized; mutation is modeled as replacing a
// Person with an edited copy.
//
// Person carries two equality relations. SameIdentity compares only the
// identifying fields (name, phone, email) and decides list uniqueness; Equal
// compares every field and detects byte-identical re-adds. They are separate
// methods on purpose: an edit legitimately changes non-identifying fields
// while remaining the "same" person.
type Person struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	Job     string `json:"job,omitempty"`
	Tags    []Tag  `json:"tags,omitempty"`
}

// NewPerson builds a Person with a normalized (sorted, deduplicated) tag set.
func NewPerson(name, phone, email, address, job string, tags []Tag) Person {
	return Person{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Job:     job,
		Tags:    normalizeTags(tags),
	}
}

// Validate checks field formats. Name, phone and email are required because
// they form the person's identity key.
func (p Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("person name must not be blank")
	}
	if !phonePattern.MatchString(p.Phone) {
		return fmt.Errorf("invalid phone %q: must be at least 3 digits", p.Phone)
	}
	if !emailPattern.MatchString(p.Email) {
		return fmt.Errorf("invalid email %q", p.Email)
	}
	return nil
}

// IdentityKey returns the structural key identifying this person: lowercased
// name plus phone and lowercased email. Participant sets and storage use it
// as a stable handle into the address book.
func (p Person) IdentityKey() string {
	return strings.ToLower(p.Name) + "|" + p.Phone + "|" + strings.ToLower(p.Email)
}

// SameIdentity reports weak equality: the identifying fields match. Name and
// email compare case-insensitively.
func (p Person) SameIdentity(other Person) bool {
	return strings.EqualFold(p.Name, other.Name) &&
		p.Phone == other.Phone &&
		strings.EqualFold(p.Email, other.Email)
}

// Equal reports exact equality: every field matches, including the tag set.
func (p Person) Equal(other Person) bool {
	return p.Name == other.Name &&
		p.Phone == other.Phone &&
		p.Email == other.Email &&
		p.Address == other.Address &&
		p.Job == other.Job &&
		slices.Equal(p.Tags, other.Tags)
}

// HasTag reports whether the person carries the given tag.
func (p Person) HasTag(tag Tag) bool {
	return slices.Contains(p.Tags, tag)
}

// WithTags returns a copy of the person carrying the given tag set instead of
// the current one. All other fields are preserved.
func (p Person) WithTags(tags []Tag) Person {
	return NewPerson(p.Name, p.Phone, p.Email, p.Address, p.Job, tags)
}

func (p Person) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteString(" (" + p.Phone + ", " + p.Email + ")")
	for _, t := range p.Tags {
		sb.WriteString(" " + t.String())
	}
	return sb.String()
}

func normalizeTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	slices.SortFunc(out, func(a, b Tag) int { return strings.Compare(a.Name, b.Name) })
	return slices.Compact(out)
}
