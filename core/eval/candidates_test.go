package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiweivv2222/pykeen/core/triples"
)

func TestCandidateSetSizes_NoSharedPatterns(t *testing.T) {
	evalTriples := triples.TripleSet{
		{Head: 0, Relation: 0, Tail: 1},
		{Head: 2, Relation: 1, Tail: 3},
	}
	sizes := CandidateSetSizes(evalTriples, 10)

	for i := range evalTriples {
		assert.Equal(t, 10, sizes.Tail[i], "nothing shares the pattern, so no candidate is filtered")
		assert.Equal(t, 10, sizes.Head[i])
	}
}

func TestCandidateSetSizes_FiltersOtherTrueTriples(t *testing.T) {
	evalTriples := triples.TripleSet{{Head: 0, Relation: 0, Tail: 1}}
	filter := triples.TripleSet{
		{Head: 0, Relation: 0, Tail: 2},
		{Head: 0, Relation: 0, Tail: 3},
		{Head: 5, Relation: 0, Tail: 4}, // different head: must not affect the query
	}
	sizes := CandidateSetSizes(evalTriples, 10, filter)

	// Tails 2 and 3 are known completions of (0, r0); the true answer 1
	// stays a candidate.
	assert.Equal(t, 8, sizes.Tail[0])
	assert.Equal(t, 10, sizes.Head[0])
}

func TestCandidateSetSizes_TrueAnswerNeverFiltered(t *testing.T) {
	evalTriples := triples.TripleSet{{Head: 0, Relation: 0, Tail: 1}}
	// The filter repeats the query's own triple; it must not shrink the pool.
	filter := triples.TripleSet{{Head: 0, Relation: 0, Tail: 1}}
	sizes := CandidateSetSizes(evalTriples, 4, filter)
	assert.Equal(t, 4, sizes.Tail[0])
}

func TestCandidateSetSizes_AlwaysAtLeastOne(t *testing.T) {
	// Every tail of a 3-entity vocabulary is a known completion.
	evalTriples := triples.TripleSet{{Head: 0, Relation: 0, Tail: 0}}
	filter := triples.TripleSet{
		{Head: 0, Relation: 0, Tail: 1},
		{Head: 0, Relation: 0, Tail: 2},
	}
	sizes := CandidateSetSizes(evalTriples, 3, filter)
	require.Equal(t, 1, sizes.Tail[0], "only the true answer remains")
}

func TestCandidateSizes_Both(t *testing.T) {
	sizes := CandidateSizes{Head: []int{3, 4}, Tail: []int{5}}
	assert.Equal(t, []int{3, 4, 5}, sizes.Both())
}
