package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/knotbook/internal/book"
	"github.com/ajitpratap0/knotbook/internal/models"
	"github.com/ajitpratap0/knotbook/internal/uniquelist"
)

func newPerson(name string, tags ...string) models.Person {
	var ts []models.Tag
	for _, t := range tags {
		ts = append(ts, models.MustTag(t))
	}
	return models.NewPerson(name, "94351253", name+"@example.com", "12 Clementi Rd", "florist", ts)
}

type personSnapshot []models.Person

func (s personSnapshot) Persons() []models.Person { return s }

type weddingSnapshot []models.Wedding

func (s weddingSnapshot) Weddings() []models.Wedding { return s }

func TestAddressBook_HasVsHasExact(t *testing.T) {
	ab := book.NewAddressBook()
	alice := newPerson("Alice")
	require.NoError(t, ab.AddPerson(alice))

	edited := alice
	edited.Job = "baker"

	err := ab.AddPerson(edited)
	require.ErrorIs(t, err, uniquelist.ErrDuplicate)

	assert.True(t, ab.HasPerson(edited), "weakly equal person is present")
	assert.False(t, ab.HasExactPerson(edited), "but not as an exact record")
	assert.True(t, ab.HasExactPerson(alice))
}

func TestAddressBook_SetPerson(t *testing.T) {
	ab := book.NewAddressBook()
	alice := newPerson("Alice")
	bob := newPerson("Bob")
	require.NoError(t, ab.AddPerson(alice))
	require.NoError(t, ab.AddPerson(bob))

	edited := alice
	edited.Phone = "87654321"
	require.NoError(t, ab.SetPerson(alice, edited))

	persons := ab.Persons()
	require.Len(t, persons, 2)
	assert.Equal(t, "87654321", persons[0].Phone, "replacement keeps the slot")

	// colliding with bob is rejected
	collide := edited
	collide.Name = "Bob"
	collide.Phone = bob.Phone
	collide.Email = bob.Email
	require.ErrorIs(t, ab.SetPerson(edited, collide), uniquelist.ErrDuplicate)
}

func TestAddressBook_ResetData(t *testing.T) {
	ab := book.NewAddressBook()
	require.NoError(t, ab.AddPerson(newPerson("Old")))

	require.NoError(t, ab.ResetData(personSnapshot{newPerson("Alice"), newPerson("Bob")}))
	assert.Len(t, ab.Persons(), 2)

	// duplicate snapshot leaves contents untouched
	dup := personSnapshot{newPerson("Carl"), newPerson("Carl")}
	require.ErrorIs(t, ab.ResetData(dup), uniquelist.ErrDuplicate)
	assert.Len(t, ab.Persons(), 2)

	require.Error(t, ab.ResetData(nil))
}

func TestWeddingBook_UniqueByName(t *testing.T) {
	wb := book.NewWeddingBook()
	require.NoError(t, wb.AddWedding(models.NewWedding("Smith-Jones", "2026-10-17", "Marina Bay")))

	err := wb.AddWedding(models.NewWedding("Smith-Jones", "2027-01-01", "Sentosa"))
	require.ErrorIs(t, err, uniquelist.ErrDuplicate)

	require.NoError(t, wb.AddWedding(models.NewWedding("Lee-Wong", "", "")))
	assert.Len(t, wb.Weddings(), 2)

	require.NoError(t, wb.RemoveWedding(models.Wedding{Name: "Smith-Jones"}))
	require.Len(t, wb.Weddings(), 1)
	assert.Equal(t, "Lee-Wong", wb.Weddings()[0].Name)
}

func TestWeddingBook_ResetData(t *testing.T) {
	wb := book.NewWeddingBook()
	snap := weddingSnapshot{
		models.NewWedding("Smith-Jones", "", ""),
		models.NewWedding("Lee-Wong", "", ""),
	}
	require.NoError(t, wb.ResetData(snap))
	assert.Len(t, wb.Weddings(), 2)

	require.ErrorIs(t, wb.ResetData(weddingSnapshot{
		models.NewWedding("Same", "", ""),
		models.NewWedding("Same", "", ""),
	}), uniquelist.ErrDuplicate)
	assert.Len(t, wb.Weddings(), 2)
}

func TestBooks_SatisfyReadOnlyInterfaces(t *testing.T) {
	var _ book.ReadOnlyAddressBook = book.NewAddressBook()
	var _ book.ReadOnlyWeddingBook = book.NewWeddingBook()
}
