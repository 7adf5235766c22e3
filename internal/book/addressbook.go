// Package book wraps the unique lists behind the two entity books. Each book
// is the sole writer of its list; everything downstream reads through views
// or the read-only projection interfaces.
package book

import (
	"fmt"

	"github.com/ajitpratap0/knotbook/internal/models"
	"github.com/ajitpratap0/knotbook/internal/uniquelist"
)

// ReadOnlyAddressBook is the projection the storage and view layers consume:
// an ordered snapshot of the persons.
type ReadOnlyAddressBook interface {
	Persons() []models.Person
}

// AddressBook owns the unique person list.
type AddressBook struct {
	persons *uniquelist.List[models.Person]
}

// NewAddressBook returns an empty address book.
func NewAddressBook() *AddressBook {
	return &AddressBook{persons: uniquelist.New[models.Person]()}
}

// NewAddressBookFrom returns an address book populated from the snapshot.
func NewAddressBookFrom(snapshot ReadOnlyAddressBook) (*AddressBook, error) {
	ab := NewAddressBook()
	if err := ab.ResetData(snapshot); err != nil {
		return nil, err
	}
	return ab, nil
}

// ResetData replaces the entire contents with the snapshot's persons.
func (ab *AddressBook) ResetData(snapshot ReadOnlyAddressBook) error {
	if snapshot == nil {
		return fmt.Errorf("reset address book: nil snapshot")
	}
	if err := ab.persons.Reset(snapshot.Persons()); err != nil {
		return fmt.Errorf("reset address book: %w", err)
	}
	return nil
}

// HasPerson reports whether a weakly-equal person exists.
func (ab *AddressBook) HasPerson(p models.Person) bool {
	return ab.persons.Contains(p)
}

// HasExactPerson reports whether a person with every field identical exists.
// HasPerson alone cannot distinguish "same identity, different data" from a
// byte-identical duplicate; re-add rejection needs this stronger check.
func (ab *AddressBook) HasExactPerson(p models.Person) bool {
	return ab.persons.ContainsExact(p)
}

// AddPerson appends the person. The person must not already exist.
func (ab *AddressBook) AddPerson(p models.Person) error {
	return ab.persons.Add(p)
}

// RemovePerson deletes the weakly-equal person.
func (ab *AddressBook) RemovePerson(p models.Person) error {
	return ab.persons.Remove(p)
}

// SetPerson replaces target with edited in place.
func (ab *AddressBook) SetPerson(target, edited models.Person) error {
	return ab.persons.Replace(target, edited)
}

// PersonList returns the live read-only view of the persons.
func (ab *AddressBook) PersonList() uniquelist.View[models.Person] {
	return ab.persons.View()
}

// Persons returns an ordered snapshot, satisfying ReadOnlyAddressBook.
func (ab *AddressBook) Persons() []models.Person {
	return ab.persons.View().Items()
}

// List exposes the backing list for view derivation. Callers must not mutate
// through it; mutation stays behind the book's methods.
func (ab *AddressBook) List() *uniquelist.List[models.Person] {
	return ab.persons
}

var _ ReadOnlyAddressBook = (*AddressBook)(nil)
