package triples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFactory_Validation(t *testing.T) {
	ts := TripleSet{{Head: 0, Relation: 0, Tail: 1}}

	_, err := NewFactory(ts, 2, 1)
	require.NoError(t, err)

	_, err = NewFactory(TripleSet{{Head: 2, Relation: 0, Tail: 0}}, 2, 1)
	assert.Error(t, err, "entity id out of range must be rejected")

	_, err = NewFactory(TripleSet{{Head: 0, Relation: 1, Tail: 0}}, 2, 1)
	assert.Error(t, err, "relation id out of range must be rejected")

	_, err = NewFactory(ts, 0, 1)
	assert.Error(t, err, "empty vocabulary must be rejected")
}

func TestFromLabeled_DeterministicEncoding(t *testing.T) {
	labeled := []LabeledTriple{
		{Head: "berlin", Relation: "capital_of", Tail: "germany"},
		{Head: "paris", Relation: "capital_of", Tail: "france"},
	}
	a, err := FromLabeled(labeled)
	require.NoError(t, err)
	b, err := FromLabeled(labeled)
	require.NoError(t, err)

	assert.Equal(t, a.Triples, b.Triples, "same labels must map to same ids")
	assert.Equal(t, 4, a.NumEntities)
	assert.Equal(t, 1, a.NumRelations)
}

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	ts := make(TripleSet, 0, 30)
	for i := 0; i < 30; i++ {
		ts = append(ts, Triple{
			Head:     int32(i % 5),
			Relation: int32(i % 3),
			Tail:     int32((i + 1) % 5),
		})
	}
	split := func(lo, hi int) *Factory {
		f, err := NewFactory(ts[lo:hi], 5, 3)
		require.NoError(t, err)
		return f
	}
	return &Dataset{
		Name:       "test",
		Training:   split(0, 24),
		Validation: split(24, 27),
		Testing:    split(27, 30),
	}
}

func TestRemix_DeterministicPerSeed(t *testing.T) {
	d := testDataset(t)

	a := d.Remix(3)
	b := d.Remix(3)
	assert.Equal(t, a.Training.Triples, b.Training.Triples, "same seed must reproduce the same split")
	assert.Equal(t, a.Testing.Triples, b.Testing.Triples)

	c := d.Remix(4)
	assert.NotEqual(t, a.Training.Triples, c.Training.Triples, "different seeds should differ")
}

func TestRemix_PreservesSplitSizes(t *testing.T) {
	d := testDataset(t)
	r := d.Remix(0)
	assert.Len(t, r.Training.Triples, 24)
	assert.Len(t, r.Validation.Triples, 3)
	assert.Len(t, r.Testing.Triples, 3)
	assert.ElementsMatch(t, d.AllTriples(), r.AllTriples(), "remix must not lose or invent triples")
}

func TestUniformSampler(t *testing.T) {
	positives := TripleSet{
		{Head: 0, Relation: 0, Tail: 1},
		{Head: 2, Relation: 1, Tail: 3},
	}
	s := NewUniformSampler(10, 4, 42)
	negatives := s.Sample(positives)
	require.Len(t, negatives, 8)

	for i, n := range negatives {
		pos := positives[i/4]
		assert.Equal(t, pos.Relation, n.Relation, "relation must never be corrupted")
		headChanged := n.Head != pos.Head
		tailChanged := n.Tail != pos.Tail
		assert.False(t, headChanged && tailChanged, "only one side may be corrupted")
		assert.GreaterOrEqual(t, n.Head, int32(0))
		assert.Less(t, n.Head, int32(10))
		assert.GreaterOrEqual(t, n.Tail, int32(0))
		assert.Less(t, n.Tail, int32(10))
	}
}
