package book

import (
	"fmt"

	"github.com/ajitpratap0/knotbook/internal/models"
	"github.com/ajitpratap0/knotbook/internal/uniquelist"
)

// ReadOnlyWeddingBook is the ordered-snapshot projection of the weddings.
type ReadOnlyWeddingBook interface {
	Weddings() []models.Wedding
}

// WeddingBook owns the unique wedding list. Participant sets inside the
// stored weddings are shared mutable state; the model manager mutates them in
// place when person tags change.
type WeddingBook struct {
	weddings *uniquelist.List[models.Wedding]
}

// NewWeddingBook returns an empty wedding book.
func NewWeddingBook() *WeddingBook {
	return &WeddingBook{weddings: uniquelist.New[models.Wedding]()}
}

// NewWeddingBookFrom returns a wedding book populated from the snapshot.
func NewWeddingBookFrom(snapshot ReadOnlyWeddingBook) (*WeddingBook, error) {
	wb := NewWeddingBook()
	if err := wb.ResetData(snapshot); err != nil {
		return nil, err
	}
	return wb, nil
}

// ResetData replaces the entire contents with the snapshot's weddings.
func (wb *WeddingBook) ResetData(snapshot ReadOnlyWeddingBook) error {
	if snapshot == nil {
		return fmt.Errorf("reset wedding book: nil snapshot")
	}
	if err := wb.weddings.Reset(snapshot.Weddings()); err != nil {
		return fmt.Errorf("reset wedding book: %w", err)
	}
	return nil
}

// HasWedding reports whether a wedding with the same name exists.
func (wb *WeddingBook) HasWedding(w models.Wedding) bool {
	return wb.weddings.Contains(w)
}

// HasExactWedding reports whether a fully identical wedding exists.
func (wb *WeddingBook) HasExactWedding(w models.Wedding) bool {
	return wb.weddings.ContainsExact(w)
}

// AddWedding appends the wedding. The name must not already be taken.
func (wb *WeddingBook) AddWedding(w models.Wedding) error {
	return wb.weddings.Add(w)
}

// RemoveWedding deletes the wedding with the same name.
func (wb *WeddingBook) RemoveWedding(w models.Wedding) error {
	return wb.weddings.Remove(w)
}

// SetWedding replaces target with edited in place.
func (wb *WeddingBook) SetWedding(target, edited models.Wedding) error {
	return wb.weddings.Replace(target, edited)
}

// WeddingList returns the live read-only view of the weddings.
func (wb *WeddingBook) WeddingList() uniquelist.View[models.Wedding] {
	return wb.weddings.View()
}

// Weddings returns an ordered snapshot, satisfying ReadOnlyWeddingBook.
func (wb *WeddingBook) Weddings() []models.Wedding {
	return wb.weddings.View().Items()
}

// List exposes the backing list for view derivation; read-only by convention.
func (wb *WeddingBook) List() *uniquelist.List[models.Wedding] {
	return wb.weddings
}

var _ ReadOnlyWeddingBook = (*WeddingBook)(nil)
