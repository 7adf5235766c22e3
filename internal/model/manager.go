// Package model implements the in-memory model of the knotbook data: the two
// entity books, the user prefs, the live filtered views, and the cross-entity
// rules that keep wedding participant sets consistent with person tags.
package model

import (
	"fmt"
	"log/slog"

	"github.com/ajitpratap0/knotbook/internal/book"
	"github.com/ajitpratap0/knotbook/internal/metrics"
	"github.com/ajitpratap0/knotbook/internal/models"
	"github.com/ajitpratap0/knotbook/internal/uniquelist"
)

// Manager owns the address book, the wedding book, the user prefs and one
// live filtered view over each collection. All mutations enter through it;
// front ends only read the filtered views and call the operations below.
//
// Manager is single-writer: callers must serialize access onto one goroutine.
type Manager struct {
	addressBook *book.AddressBook
	weddingBook *book.WeddingBook
	prefs       UserPrefs

	filteredPersons  *uniquelist.Filtered[models.Person]
	filteredWeddings *uniquelist.Filtered[models.Wedding]

	logger *slog.Logger
}

// NewManager initializes a Manager from the given snapshots and prefs.
func NewManager(persons book.ReadOnlyAddressBook, weddings book.ReadOnlyWeddingBook, prefs UserPrefs, logger *slog.Logger) (*Manager, error) {
	if persons == nil || weddings == nil {
		return nil, fmt.Errorf("new manager: nil snapshot")
	}
	if logger == nil {
		logger = slog.Default()
	}

	ab, err := book.NewAddressBookFrom(persons)
	if err != nil {
		return nil, fmt.Errorf("new manager: %w", err)
	}
	wb, err := book.NewWeddingBookFrom(weddings)
	if err != nil {
		return nil, fmt.Errorf("new manager: %w", err)
	}

	logger.Debug("initializing model",
		"persons", len(persons.Persons()),
		"weddings", len(weddings.Weddings()))

	m := &Manager{
		addressBook:      ab,
		weddingBook:      wb,
		prefs:            prefs,
		filteredPersons:  uniquelist.NewFiltered(ab.List()),
		filteredWeddings: uniquelist.NewFiltered(wb.List()),
		logger:           logger,
	}
	m.relinkParticipants()
	return m, nil
}

// relinkParticipants re-borrows every participant reference from the address
// book and drops participants with no address book entry. Loaded snapshots
// may carry participant records that lag behind the person list; after this
// pass every participant is the book's own value.
func (m *Manager) relinkParticipants() {
	persons := m.addressBook.Persons()
	for _, w := range m.weddingBook.Weddings() {
		for _, participant := range w.Participants.People() {
			found := false
			for _, p := range persons {
				if p.SameIdentity(participant) {
					w.Participants.Add(p)
					found = true
					break
				}
			}
			if !found {
				m.logger.Debug("dropping unknown participant", "wedding", w.Name, "person", participant.Name)
				w.Participants.Remove(participant)
			}
		}
	}
}

// NewEmptyManager initializes a Manager with empty books and default prefs.
func NewEmptyManager(logger *slog.Logger) *Manager {
	m, _ := NewManager(book.NewAddressBook(), book.NewWeddingBook(), DefaultUserPrefs(), logger)
	return m
}

// --- user prefs ---

// UserPrefs returns the current prefs.
func (m *Manager) UserPrefs() UserPrefs { return m.prefs }

// SetUserPrefs replaces the prefs wholesale.
func (m *Manager) SetUserPrefs(prefs UserPrefs) { m.prefs = prefs }

// GuiSettings returns the stored GUI settings.
func (m *Manager) GuiSettings() GuiSettings { return m.prefs.Gui }

// SetGuiSettings stores the GUI settings verbatim.
func (m *Manager) SetGuiSettings(gui GuiSettings) { m.prefs.Gui = gui }

// AddressBookFilePath returns the address book data file path.
func (m *Manager) AddressBookFilePath() string { return m.prefs.AddressBookFilePath }

// SetAddressBookFilePath stores the address book data file path.
func (m *Manager) SetAddressBookFilePath(path string) { m.prefs.AddressBookFilePath = path }

// WeddingBookFilePath returns the wedding book data file path.
func (m *Manager) WeddingBookFilePath() string { return m.prefs.WeddingBookFilePath }

// SetWeddingBookFilePath stores the wedding book data file path.
func (m *Manager) SetWeddingBookFilePath(path string) { m.prefs.WeddingBookFilePath = path }

// --- address book ---

// SetAddressBook replaces the address book contents from the snapshot.
func (m *Manager) SetAddressBook(snapshot book.ReadOnlyAddressBook) error {
	return m.addressBook.ResetData(snapshot)
}

// AddressBook returns the read-only projection of the address book.
func (m *Manager) AddressBook() book.ReadOnlyAddressBook { return m.addressBook }

// HasPerson reports whether a weakly-equal person exists.
func (m *Manager) HasPerson(p models.Person) bool { return m.addressBook.HasPerson(p) }

// HasExactPerson reports whether a fully identical person exists.
func (m *Manager) HasExactPerson(p models.Person) bool { return m.addressBook.HasExactPerson(p) }

// AddPerson appends the person and reinstalls the show-all person predicate.
func (m *Manager) AddPerson(p models.Person) error {
	if err := m.addressBook.AddPerson(p); err != nil {
		return err
	}
	m.filteredPersons.SetPredicate(ShowAllPersons)
	metrics.Inc(metrics.PersonsAdded)
	m.logger.Debug("person added", "person", p.Name)
	return nil
}

// DeletePerson removes the weakly-equal person from the address book. Any
// wedding memberships the person held should be severed first via
// SyncPersonTagRemoval.
func (m *Manager) DeletePerson(target models.Person) error {
	if err := m.addressBook.RemovePerson(target); err != nil {
		return err
	}
	metrics.Inc(metrics.PersonsDeleted)
	m.logger.Debug("person deleted", "person", target.Name)
	return nil
}

// SetPerson replaces target with edited in the address book. Callers editing
// a person who may appear in wedding participant sets must follow up with
// SyncPersonEdit before refreshing the person view.
func (m *Manager) SetPerson(target, edited models.Person) error {
	if err := m.addressBook.SetPerson(target, edited); err != nil {
		return err
	}
	metrics.Inc(metrics.PersonsEdited)
	return nil
}

// --- wedding book ---

// SetWeddingBook replaces the wedding book contents from the snapshot.
func (m *Manager) SetWeddingBook(snapshot book.ReadOnlyWeddingBook) error {
	return m.weddingBook.ResetData(snapshot)
}

// WeddingBook returns the read-only projection of the wedding book.
func (m *Manager) WeddingBook() book.ReadOnlyWeddingBook { return m.weddingBook }

// HasWedding reports whether a wedding with the same name exists.
func (m *Manager) HasWedding(w models.Wedding) bool { return m.weddingBook.HasWedding(w) }

// HasExactWedding reports whether a fully identical wedding exists.
func (m *Manager) HasExactWedding(w models.Wedding) bool { return m.weddingBook.HasExactWedding(w) }

// AddWedding appends the wedding, enrolls every person already tagged with
// its name, and reinstalls the show-all wedding predicate. Enrollment lives
// here so every front door produces the same tag linkage.
func (m *Manager) AddWedding(w models.Wedding) error {
	if w.Participants == nil {
		w.Participants = models.NewParticipantSet()
	}
	if err := m.weddingBook.AddWedding(w); err != nil {
		return err
	}
	for _, p := range m.addressBook.Persons() {
		if p.HasTag(models.Tag{Name: w.Name}) {
			w.Participants.Add(p)
		}
	}
	m.filteredWeddings.SetPredicate(ShowAllWeddings)
	metrics.Inc(metrics.WeddingsAdded)
	m.logger.Debug("wedding added", "wedding", w.Name, "participants", w.Participants.Len())
	return nil
}

// DeleteWedding removes the wedding with the same name.
func (m *Manager) DeleteWedding(target models.Wedding) error {
	if err := m.weddingBook.RemoveWedding(target); err != nil {
		return err
	}
	metrics.Inc(metrics.WeddingsDeleted)
	m.logger.Debug("wedding deleted", "wedding", target.Name)
	return nil
}

// SetWedding replaces target with edited in the wedding book.
func (m *Manager) SetWedding(target, edited models.Wedding) error {
	if err := m.weddingBook.SetWedding(target, edited); err != nil {
		return err
	}
	metrics.Inc(metrics.WeddingsEdited)
	return nil
}

// --- filtered views ---

// FilteredPersons returns the live filtered person view.
func (m *Manager) FilteredPersons() *uniquelist.Filtered[models.Person] {
	return m.filteredPersons
}

// FilteredWeddings returns the live filtered wedding view.
func (m *Manager) FilteredWeddings() *uniquelist.Filtered[models.Wedding] {
	return m.filteredWeddings
}

// UpdateFilteredPersons installs pred as the person view's predicate. Keyword
// predicates and unconstrained ones enter through the same mechanism.
func (m *Manager) UpdateFilteredPersons(pred PersonPredicate) error {
	if pred == nil {
		return fmt.Errorf("update filtered persons: nil predicate")
	}
	m.filteredPersons.SetPredicate(pred)
	return nil
}

// UpdateFilteredWeddings installs pred as the wedding view's predicate.
func (m *Manager) UpdateFilteredWeddings(pred WeddingPredicate) error {
	if pred == nil {
		return fmt.Errorf("update filtered weddings: nil predicate")
	}
	m.filteredWeddings.SetPredicate(pred)
	return nil
}

// --- cross-entity linkage ---

// WeddingsForTags returns every wedding in the current filtered wedding view
// whose name equals one of the tag names. A wedding appears once per matching
// tag occurrence; callers operate on participant sets, which deduplicate, so
// duplicates in the result are harmless.
func (m *Manager) WeddingsForTags(tags []models.Tag) []models.Wedding {
	var out []models.Wedding
	for _, w := range m.filteredWeddings.Items() {
		for _, t := range tags {
			if w.Name == t.Name {
				out = append(out, w)
			}
		}
	}
	return out
}

// SyncPersonEdit swaps old for edited in the participant set of every wedding
// that contains old, so no wedding retains a reference to a superseded person
// value. It must run after SetPerson and before the person view is refreshed.
func (m *Manager) SyncPersonEdit(old, edited models.Person) {
	for _, w := range m.filteredWeddings.Items() {
		if w.Participants.Contains(old) {
			w.Participants.Remove(old)
			w.Participants.Add(edited)
			metrics.Inc(metrics.EditSyncs)
			m.logger.Debug("participant updated", "wedding", w.Name, "person", edited.Name)
		}
	}
}

// SyncPersonTagRemoval removes the person from the participant sets of the
// weddings matching removedTags. Memberships derived from tags the person
// still carries are untouched.
func (m *Manager) SyncPersonTagRemoval(p models.Person, removedTags []models.Tag) {
	for _, w := range m.WeddingsForTags(removedTags) {
		if w.Participants.Contains(p) {
			w.Participants.Remove(p)
			metrics.Inc(metrics.TagSeverances)
			m.logger.Debug("participant removed", "wedding", w.Name, "person", p.Name)
		}
	}
}

// ClearAllTags severs every tag-derived wedding membership of the person,
// replaces them in the address book with a copy carrying no tags, reinstalls
// the show-all person predicate, and returns the replacement.
func (m *Manager) ClearAllTags(target models.Person) (models.Person, error) {
	m.SyncPersonTagRemoval(target, target.Tags)

	edited := target.WithTags(nil)
	if err := m.SetPerson(target, edited); err != nil {
		return models.Person{}, fmt.Errorf("clear tags: %w", err)
	}
	m.filteredPersons.SetPredicate(ShowAllPersons)
	return edited, nil
}
