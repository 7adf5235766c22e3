package uniquelist

// Predicate decides whether an element is visible through a Filtered view.
type Predicate[T any] func(T) bool

// ShowAll is the default predicate: every element is visible.
func ShowAll[T any](T) bool { return true }

// Filtered is a live, predicate-constrained projection of a List. It holds a
// reference to its source and the current predicate and re-evaluates on each
// read, so installing a new predicate is O(1) and mutations of the backing
// list are immediately visible.
type Filtered[T Entity[T]] struct {
	source *List[T]
	pred   Predicate[T]
}

// NewFiltered returns a filtered view over source showing all elements.
func NewFiltered[T Entity[T]](source *List[T]) *Filtered[T] {
	return &Filtered[T]{source: source, pred: ShowAll[T]}
}

// SetPredicate installs pred as the view's current predicate. It replaces
// any previously installed predicate without touching the backing data.
func (f *Filtered[T]) SetPredicate(pred Predicate[T]) {
	f.pred = pred
}

// Items returns the elements currently passing the predicate, in the backing
// list's insertion order.
func (f *Filtered[T]) Items() []T {
	var out []T
	for i := 0; i < f.source.Len(); i++ {
		if it := f.source.At(i); f.pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of elements currently passing the predicate.
func (f *Filtered[T]) Len() int {
	n := 0
	for i := 0; i < f.source.Len(); i++ {
		if f.pred(f.source.At(i)) {
			n++
		}
	}
	return n
}
