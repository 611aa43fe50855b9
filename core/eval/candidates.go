// Package eval implements the filtered evaluation protocol: candidate-set
// sizing, closed-form expected metrics under a uniformly random scorer, and
// realized rank-based metrics for any scorer.
package eval

import (
	"slices"

	"github.com/weiweivv2222/pykeen/core/triples"
)

// CandidateSizes holds, per evaluation triple, the number of entities that
// remain valid ranking candidates after filtering, for each query side.
type CandidateSizes struct {
	Head []int
	Tail []int
}

// Both concatenates the head and tail sizes into one multiset.
func (c CandidateSizes) Both() []int {
	out := make([]int, 0, len(c.Head)+len(c.Tail))
	out = append(out, c.Head...)
	out = append(out, c.Tail...)
	return out
}

// filterIndex maps a fixed (head, relation) or (relation, tail) pattern to
// the distinct entities known to complete it. The evaluation triples are
// always part of the index, so a query's own answer is always present.
type filterIndex struct {
	tailsByHR map[int64][]int32
	headsByRT map[int64][]int32
}

func patternKey(a, b int32) int64 {
	return int64(a)<<32 | int64(b)
}

func buildFilterIndex(sets ...triples.TripleSet) *filterIndex {
	idx := &filterIndex{
		tailsByHR: make(map[int64][]int32),
		headsByRT: make(map[int64][]int32),
	}
	for _, set := range sets {
		for _, t := range set {
			hr := patternKey(t.Head, t.Relation)
			idx.tailsByHR[hr] = append(idx.tailsByHR[hr], t.Tail)
			rt := patternKey(t.Relation, t.Tail)
			idx.headsByRT[rt] = append(idx.headsByRT[rt], t.Head)
		}
	}
	for key, entities := range idx.tailsByHR {
		slices.Sort(entities)
		idx.tailsByHR[key] = slices.Compact(entities)
	}
	for key, entities := range idx.headsByRT {
		slices.Sort(entities)
		idx.headsByRT[key] = slices.Compact(entities)
	}
	return idx
}

// knownTails returns the distinct known tail completions for (h, r).
func (idx *filterIndex) knownTails(h, r int32) []int32 {
	return idx.tailsByHR[patternKey(h, r)]
}

// knownHeads returns the distinct known head completions for (r, t).
func (idx *filterIndex) knownHeads(r, t int32) []int32 {
	return idx.headsByRT[patternKey(r, t)]
}

// CandidateSetSizes computes per-query candidate counts for both sides under
// the filtered protocol. The filtered-out set for a query is every known
// completion of its fixed pattern across evalTriples and all filter sets,
// excluding the query's own true answer; that answer always remains a valid
// candidate. With nothing else sharing the pattern, the size is numEntities.
func CandidateSetSizes(evalTriples triples.TripleSet, numEntities int, filters ...triples.TripleSet) CandidateSizes {
	idx := buildFilterIndex(append([]triples.TripleSet{evalTriples}, filters...)...)
	sizes := CandidateSizes{
		Head: make([]int, len(evalTriples)),
		Tail: make([]int, len(evalTriples)),
	}
	for i, t := range evalTriples {
		// The true answer is always in the known set, so the filtered-out
		// count is one less than the set's cardinality.
		sizes.Tail[i] = numEntities - (len(idx.knownTails(t.Head, t.Relation)) - 1)
		sizes.Head[i] = numEntities - (len(idx.knownHeads(t.Relation, t.Tail)) - 1)
	}
	return sizes
}
