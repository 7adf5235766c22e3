package models

import (
	"fmt"
	"regexp"
)

// tagNamePattern allows alphanumerics, hyphens and apostrophes so that tags
// can carry wedding names like "Smith-Jones" or "O'Brien-Reyes".
var tagNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9'-]*$`)

// Tag is an immutable label attached to a person. A tag whose name equals a
// wedding's name marks that person as a participant of the wedding.
type Tag struct {
	Name string `json:"name"`
}

// NewTag validates the tag name and returns the tag.
func NewTag(name string) (Tag, error) {
	if !tagNamePattern.MatchString(name) {
		return Tag{}, fmt.Errorf("invalid tag name %q: must be alphanumeric with optional hyphens or apostrophes", name)
	}
	return Tag{Name: name}, nil
}

// MustTag is a convenience for fixtures and tests; it panics on an invalid name.
func MustTag(name string) Tag {
	t, err := NewTag(name)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tag) String() string {
	return "[" + t.Name + "]"
}
