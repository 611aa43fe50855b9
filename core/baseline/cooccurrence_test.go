package baseline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiweivv2222/pykeen/core/triples"
)

func toyFactory(t *testing.T) *triples.Factory {
	t.Helper()
	f, err := triples.NewFactory(triples.TripleSet{
		{Head: 0, Relation: 0, Tail: 1},
		{Head: 0, Relation: 0, Tail: 2},
		{Head: 1, Relation: 1, Tail: 2},
	}, 4, 2)
	require.NoError(t, err)
	return f
}

func TestCooccurrence_IdenticalRolesRejected(t *testing.T) {
	_, err := Cooccurrence(toyFactory(t), RoleHead, RoleHead, false)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCooccurrence_CountsPreserved(t *testing.T) {
	f := toyFactory(t)
	for _, tc := range []struct {
		rowRole, colRole Role
	}{
		{RoleRelation, RoleHead},
		{RoleRelation, RoleTail},
		{RoleHead, RoleTail},
		{RoleTail, RoleHead},
	} {
		m, err := Cooccurrence(f, tc.rowRole, tc.colRole, false)
		require.NoError(t, err)
		assert.Equal(t, float64(f.NumTriples()), m.Sum(),
			"%s x %s: total mass must equal the triple count", tc.rowRole, tc.colRole)
	}
}

func TestCooccurrence_DuplicatesAccumulate(t *testing.T) {
	f, err := triples.NewFactory(triples.TripleSet{
		{Head: 0, Relation: 0, Tail: 1},
		{Head: 0, Relation: 0, Tail: 1},
		{Head: 0, Relation: 0, Tail: 1},
	}, 2, 1)
	require.NoError(t, err)

	m, err := Cooccurrence(f, RoleRelation, RoleTail, false)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.At(0, 1))
}

func TestCooccurrence_NormalizedRowsSumToOneOrZero(t *testing.T) {
	f := toyFactory(t)
	m, err := Cooccurrence(f, RoleHead, RoleTail, true)
	require.NoError(t, err)

	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		_, vals := m.Row(i)
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		if len(vals) == 0 {
			continue // unobserved rows stay all-zero
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "row %d", i)
	}

	// Entities 2 and 3 never appear as heads; their rows must be empty.
	for _, row := range []int{2, 3} {
		cols, _ := m.Row(row)
		assert.Empty(t, cols, "unobserved head %d", row)
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "head", RoleHead.String())
	assert.Equal(t, "relation", RoleRelation.String())
	assert.Equal(t, "tail", RoleTail.String())
}

func TestBuild_UnknownModel(t *testing.T) {
	_, err := Build(Config{Model: "TransE"}, toyFactory(t))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidRole))
}
