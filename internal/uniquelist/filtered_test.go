package uniquelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltered_DefaultShowsAll(t *testing.T) {
	l := New[entry]()
	require.NoError(t, l.Add(entry{key: "a"}))
	require.NoError(t, l.Add(entry{key: "b"}))

	f := NewFiltered(l)
	assert.Equal(t, []string{"a", "b"}, keys(f.Items()))
	assert.Equal(t, 2, f.Len())
}

func TestFiltered_SetPredicate(t *testing.T) {
	l := New[entry]()
	for _, k := range []string{"ant", "bee", "ape"} {
		require.NoError(t, l.Add(entry{key: k}))
	}

	f := NewFiltered(l)
	f.SetPredicate(func(e entry) bool { return e.key[0] == 'a' })

	assert.Equal(t, []string{"ant", "ape"}, keys(f.Items()))
	assert.Equal(t, 2, f.Len())
}

func TestFiltered_SetPredicateIsIdempotent(t *testing.T) {
	l := New[entry]()
	require.NoError(t, l.Add(entry{key: "a"}))

	f := NewFiltered(l)
	f.SetPredicate(ShowAll[entry])
	first := keys(f.Items())
	f.SetPredicate(ShowAll[entry])
	second := keys(f.Items())

	assert.Equal(t, first, second)
}

func TestFiltered_ReflectsBackingMutations(t *testing.T) {
	l := New[entry]()
	f := NewFiltered(l)
	f.SetPredicate(func(e entry) bool { return e.key != "hidden" })

	require.NoError(t, l.Add(entry{key: "visible"}))
	require.NoError(t, l.Add(entry{key: "hidden"}))

	assert.Equal(t, []string{"visible"}, keys(f.Items()), "mutations show through without re-installing the predicate")

	require.NoError(t, l.Remove(entry{key: "visible"}))
	assert.Empty(t, f.Items())
}
