package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ajitpratap0/knotbook/internal/book"
	"github.com/ajitpratap0/knotbook/internal/model"
)

// JSONStorage persists snapshots as pretty-printed JSON files.
type JSONStorage struct {
	addressBookPath string
	weddingBookPath string
	prefsPath       string
	logger          *slog.Logger
}

// NewJSONStorage creates a JSONStorage writing to the three given paths.
func NewJSONStorage(addressBookPath, weddingBookPath, prefsPath string, logger *slog.Logger) *JSONStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONStorage{
		addressBookPath: addressBookPath,
		weddingBookPath: weddingBookPath,
		prefsPath:       prefsPath,
		logger:          logger,
	}
}

// ReadAddressBook loads the address book file. A missing file yields an empty
// snapshot.
func (s *JSONStorage) ReadAddressBook() (AddressBookSnapshot, error) {
	var snap AddressBookSnapshot
	if err := s.readJSON(s.addressBookPath, &snap); err != nil {
		return AddressBookSnapshot{}, fmt.Errorf("reading address book: %w", err)
	}
	return snap, nil
}

// SaveAddressBook writes the address book snapshot.
func (s *JSONStorage) SaveAddressBook(snapshot book.ReadOnlyAddressBook) error {
	if snapshot == nil {
		return fmt.Errorf("saving address book: nil snapshot")
	}
	snap := AddressBookSnapshot{PersonRecords: snapshot.Persons()}
	if err := s.writeJSON(s.addressBookPath, snap); err != nil {
		return fmt.Errorf("saving address book: %w", err)
	}
	return nil
}

// ReadWeddingBook loads the wedding book file. A missing file yields an empty
// snapshot.
func (s *JSONStorage) ReadWeddingBook() (WeddingBookSnapshot, error) {
	var snap WeddingBookSnapshot
	if err := s.readJSON(s.weddingBookPath, &snap); err != nil {
		return WeddingBookSnapshot{}, fmt.Errorf("reading wedding book: %w", err)
	}
	return snap, nil
}

// SaveWeddingBook writes the wedding book snapshot.
func (s *JSONStorage) SaveWeddingBook(snapshot book.ReadOnlyWeddingBook) error {
	if snapshot == nil {
		return fmt.Errorf("saving wedding book: nil snapshot")
	}
	snap := WeddingBookSnapshot{WeddingRecords: snapshot.Weddings()}
	if err := s.writeJSON(s.weddingBookPath, snap); err != nil {
		return fmt.Errorf("saving wedding book: %w", err)
	}
	return nil
}

// ReadUserPrefs loads the prefs file, falling back to defaults when missing.
func (s *JSONStorage) ReadUserPrefs() (model.UserPrefs, error) {
	prefs := model.DefaultUserPrefs()
	if err := s.readJSON(s.prefsPath, &prefs); err != nil {
		return model.UserPrefs{}, fmt.Errorf("reading user prefs: %w", err)
	}
	return prefs, nil
}

// SaveUserPrefs writes the prefs file.
func (s *JSONStorage) SaveUserPrefs(prefs model.UserPrefs) error {
	if err := s.writeJSON(s.prefsPath, prefs); err != nil {
		return fmt.Errorf("saving user prefs: %w", err)
	}
	return nil
}

// readJSON unmarshals path into v, leaving v untouched when the file does not
// exist yet.
func (s *JSONStorage) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("data file missing, starting empty", "path", path)
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v to path via a temp file in the same directory so a crash
// mid-write never truncates the previous snapshot.
func (s *JSONStorage) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ Storage = (*JSONStorage)(nil)
