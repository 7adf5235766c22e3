// Package storage is the persistence boundary: it reads and writes JSON
// snapshots of the two books and the user prefs. The model core never touches
// the filesystem itself.
package storage

import (
	"github.com/ajitpratap0/knotbook/internal/book"
	"github.com/ajitpratap0/knotbook/internal/model"
	"github.com/ajitpratap0/knotbook/internal/models"
)

// AddressBookSnapshot is the on-disk shape of the address book. It satisfies
// book.ReadOnlyAddressBook so it can seed a model directly.
type AddressBookSnapshot struct {
	PersonRecords []models.Person `json:"persons"`
}

// Persons returns the ordered person records.
func (s AddressBookSnapshot) Persons() []models.Person { return s.PersonRecords }

// WeddingBookSnapshot is the on-disk shape of the wedding book. It satisfies
// book.ReadOnlyWeddingBook.
type WeddingBookSnapshot struct {
	WeddingRecords []models.Wedding `json:"weddings"`
}

// Weddings returns the ordered wedding records.
func (s WeddingBookSnapshot) Weddings() []models.Wedding { return s.WeddingRecords }

// Storage defines snapshot persistence for the model. Read methods return
// empty/default values when no file exists yet.
type Storage interface {
	// ReadAddressBook loads the address book snapshot.
	ReadAddressBook() (AddressBookSnapshot, error)

	// SaveAddressBook writes the address book snapshot.
	SaveAddressBook(snapshot book.ReadOnlyAddressBook) error

	// ReadWeddingBook loads the wedding book snapshot.
	ReadWeddingBook() (WeddingBookSnapshot, error)

	// SaveWeddingBook writes the wedding book snapshot.
	SaveWeddingBook(snapshot book.ReadOnlyWeddingBook) error

	// ReadUserPrefs loads the user prefs, falling back to defaults.
	ReadUserPrefs() (model.UserPrefs, error)

	// SaveUserPrefs writes the user prefs.
	SaveUserPrefs(prefs model.UserPrefs) error
}

var (
	_ book.ReadOnlyAddressBook = AddressBookSnapshot{}
	_ book.ReadOnlyWeddingBook = WeddingBookSnapshot{}
)
