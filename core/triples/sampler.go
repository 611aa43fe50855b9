package triples

import "math/rand"

// NegativeSampler produces corrupted counterparts for a batch of positive
// triples. It is consumed by training loops, never by the baseline engine.
type NegativeSampler interface {
	// Sample returns NumNegatives() corrupted triples per positive, in
	// positive-major order.
	Sample(positive TripleSet) TripleSet
	NumNegatives() int
}

// UniformSampler corrupts either the head or the tail of each positive,
// chosen uniformly, by replacing it with a uniformly random entity. False
// negatives are not filtered; consumers that need exact negatives must filter
// against their own known triples.
type UniformSampler struct {
	numEntities   int
	numNegsPerPos int
	rng           *rand.Rand
}

// NewUniformSampler returns a sampler over the given entity vocabulary.
// numNegsPerPos values below one are clamped to one.
func NewUniformSampler(numEntities, numNegsPerPos int, seed int64) *UniformSampler {
	if numNegsPerPos < 1 {
		numNegsPerPos = 1
	}
	return &UniformSampler{
		numEntities:   numEntities,
		numNegsPerPos: numNegsPerPos,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

func (s *UniformSampler) NumNegatives() int { return s.numNegsPerPos }

func (s *UniformSampler) Sample(positive TripleSet) TripleSet {
	out := make(TripleSet, 0, len(positive)*s.numNegsPerPos)
	for _, t := range positive {
		for n := 0; n < s.numNegsPerPos; n++ {
			corrupted := t
			replacement := int32(s.rng.Intn(s.numEntities))
			if s.rng.Intn(2) == 0 {
				corrupted.Head = replacement
			} else {
				corrupted.Tail = replacement
			}
			out = append(out, corrupted)
		}
	}
	return out
}
