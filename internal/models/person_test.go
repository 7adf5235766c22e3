package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPerson(name string, tags ...string) Person {
	var ts []Tag
	for _, t := range tags {
		ts = append(ts, MustTag(t))
	}
	return NewPerson(name, "94351253", name+"@example.com", "12 Clementi Rd", "florist", ts)
}

func TestPerson_SameIdentity(t *testing.T) {
	alice := testPerson("Alice Pauline")

	edited := alice
	edited.Job = "baker"
	edited.Address = "31 Kent Ridge"

	assert.True(t, alice.SameIdentity(edited), "non-identifying field changes keep identity")
	assert.False(t, alice.Equal(edited))

	renamed := alice
	renamed.Name = "Alice Tan"
	assert.False(t, alice.SameIdentity(renamed))

	folded := alice
	folded.Name = "ALICE PAULINE"
	assert.True(t, alice.SameIdentity(folded), "name comparison ignores case")
}

func TestPerson_Equal_IncludesTags(t *testing.T) {
	p1 := testPerson("Benson", "Smith-Jones")
	p2 := testPerson("Benson", "Smith-Jones")
	p3 := testPerson("Benson")

	assert.True(t, p1.Equal(p2))
	assert.False(t, p1.Equal(p3))
	assert.True(t, p1.SameIdentity(p3))
}

func TestNewPerson_NormalizesTags(t *testing.T) {
	p := NewPerson("Carl", "95352563", "carl@example.com", "", "",
		[]Tag{MustTag("zeta"), MustTag("alpha"), MustTag("zeta")})

	require.Len(t, p.Tags, 2)
	assert.Equal(t, "alpha", p.Tags[0].Name)
	assert.Equal(t, "zeta", p.Tags[1].Name)
}

func TestPerson_WithTags(t *testing.T) {
	p := testPerson("Daniel", "Smith-Jones")

	cleared := p.WithTags(nil)

	assert.Empty(t, cleared.Tags)
	assert.Equal(t, p.Name, cleared.Name)
	assert.Equal(t, p.Phone, cleared.Phone)
	assert.Equal(t, p.Email, cleared.Email)
	assert.Equal(t, p.Address, cleared.Address)
	assert.Equal(t, p.Job, cleared.Job)
	// original untouched
	assert.Len(t, p.Tags, 1)
}

func TestPerson_Validate(t *testing.T) {
	valid := testPerson("Elle")
	require.NoError(t, valid.Validate())

	blankName := valid
	blankName.Name = "  "
	assert.Error(t, blankName.Validate())

	badPhone := valid
	badPhone.Phone = "12"
	assert.Error(t, badPhone.Validate())

	badPhone.Phone = "9435-1253"
	assert.Error(t, badPhone.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())
}

func TestPerson_IdentityKey_FoldsCase(t *testing.T) {
	a := testPerson("Fiona")
	b := a
	b.Name = "FIONA"

	assert.Equal(t, a.IdentityKey(), b.IdentityKey())
}

func TestNewTag_Validation(t *testing.T) {
	_, err := NewTag("Smith-Jones")
	require.NoError(t, err)

	_, err = NewTag("O'Brien-Reyes")
	require.NoError(t, err)

	_, err = NewTag("")
	assert.Error(t, err)

	_, err = NewTag("has space")
	assert.Error(t, err)

	_, err = NewTag("-leading")
	assert.Error(t, err)
}
