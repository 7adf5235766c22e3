package storage_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/knotbook/internal/model"
	"github.com/ajitpratap0/knotbook/internal/models"
	"github.com/ajitpratap0/knotbook/internal/storage"
)

func newTestStorage(t *testing.T) *storage.JSONStorage {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return storage.NewJSONStorage(
		filepath.Join(dir, "data", "addressbook.json"),
		filepath.Join(dir, "data", "weddingbook.json"),
		filepath.Join(dir, "prefs.json"),
		logger,
	)
}

func TestJSONStorage_AddressBookRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	alice := models.NewPerson("Alice", "94351253", "alice@example.com", "12 Clementi Rd", "florist",
		[]models.Tag{models.MustTag("Smith-Jones")})
	out := storage.AddressBookSnapshot{PersonRecords: []models.Person{alice}}

	require.NoError(t, store.SaveAddressBook(out))

	in, err := store.ReadAddressBook()
	require.NoError(t, err)
	require.Len(t, in.Persons(), 1)
	assert.True(t, in.Persons()[0].Equal(alice))
}

func TestJSONStorage_WeddingBookRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	alice := models.NewPerson("Alice", "94351253", "alice@example.com", "", "", nil)
	wedding := models.NewWedding("Smith-Jones", "2026-10-17", "Marina Bay")
	wedding.Participants.Add(alice)
	out := storage.WeddingBookSnapshot{WeddingRecords: []models.Wedding{wedding}}

	require.NoError(t, store.SaveWeddingBook(out))

	in, err := store.ReadWeddingBook()
	require.NoError(t, err)
	require.Len(t, in.Weddings(), 1)
	got := in.Weddings()[0]
	assert.Equal(t, "Smith-Jones", got.Name)
	require.Equal(t, 1, got.Participants.Len(), "participants survive the round trip")
	assert.True(t, got.Participants.Contains(alice))
}

func TestJSONStorage_MissingFiles(t *testing.T) {
	store := newTestStorage(t)

	ab, err := store.ReadAddressBook()
	require.NoError(t, err)
	assert.Empty(t, ab.Persons())

	wb, err := store.ReadWeddingBook()
	require.NoError(t, err)
	assert.Empty(t, wb.Weddings())

	prefs, err := store.ReadUserPrefs()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultUserPrefs(), prefs, "missing prefs file falls back to defaults")
}

func TestJSONStorage_UserPrefsRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	prefs := model.DefaultUserPrefs()
	prefs.AddressBookFilePath = "/elsewhere/ab.json"
	prefs.Gui.WindowWidth = 1280

	require.NoError(t, store.SaveUserPrefs(prefs))

	got, err := store.ReadUserPrefs()
	require.NoError(t, err)
	assert.Equal(t, prefs, got)
}

func TestJSONStorage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "addressbook.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := storage.NewJSONStorage(path, filepath.Join(dir, "wb.json"), filepath.Join(dir, "prefs.json"), nil)
	_, err := store.ReadAddressBook()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading address book")
}

func TestJSONStorage_SaveRejectsNilSnapshot(t *testing.T) {
	store := newTestStorage(t)
	require.Error(t, store.SaveAddressBook(nil))
	require.Error(t, store.SaveWeddingBook(nil))
}

func TestJSONStorage_OverwriteKeepsSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "addressbook.json")
	store := storage.NewJSONStorage(path, filepath.Join(dir, "wb.json"), filepath.Join(dir, "prefs.json"), nil)

	require.NoError(t, store.SaveAddressBook(storage.AddressBookSnapshot{}))
	require.NoError(t, store.SaveAddressBook(storage.AddressBookSnapshot{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are renamed away, not left behind")
}
