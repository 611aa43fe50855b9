package datasets

import (
	"fmt"
	"math/rand"

	"github.com/weiweivv2222/pykeen/core/triples"
)

// The bundled synthetic datasets give the benchmark something to run without
// any downloads. Each generator is deterministic, so every process sees the
// same graphs.

func init() {
	Register("chains", func() (*triples.Dataset, error) {
		return generate("chains", 64, 4, 600, 11, chainTriple)
	})
	Register("clusters", func() (*triples.Dataset, error) {
		return generate("clusters", 96, 6, 1200, 23, clusterTriple)
	})
	Register("hubs", func() (*triples.Dataset, error) {
		return generate("hubs", 128, 8, 2000, 47, hubTriple)
	})
}

// chainTriple links each entity forward along a ring, one ring per relation.
func chainTriple(rng *rand.Rand, numEntities, numRelations int) triples.Triple {
	r := int32(rng.Intn(numRelations))
	h := int32(rng.Intn(numEntities))
	step := int32(r + 1)
	return triples.Triple{Head: h, Relation: r, Tail: (h + step) % int32(numEntities)}
}

// clusterTriple keeps each relation inside its own entity block, so relations
// have distinctive pseudo-types.
func clusterTriple(rng *rand.Rand, numEntities, numRelations int) triples.Triple {
	r := int32(rng.Intn(numRelations))
	blockSize := numEntities / numRelations
	base := int(r) * blockSize
	h := int32(base + rng.Intn(blockSize))
	t := int32(base + rng.Intn(blockSize))
	return triples.Triple{Head: h, Relation: r, Tail: t}
}

// hubTriple concentrates tails on a few hub entities, giving heavy-tailed
// co-occurrence counts.
func hubTriple(rng *rand.Rand, numEntities, numRelations int) triples.Triple {
	r := int32(rng.Intn(numRelations))
	h := int32(rng.Intn(numEntities))
	hub := int32(rng.Intn(1 + numEntities/16))
	return triples.Triple{Head: h, Relation: r, Tail: hub}
}

func generate(
	name string,
	numEntities, numRelations, numTriples int,
	seed int64,
	gen func(*rand.Rand, int, int) triples.Triple,
) (*triples.Dataset, error) {
	rng := rand.New(rand.NewSource(seed))
	ts := make(triples.TripleSet, numTriples)
	for i := range ts {
		ts[i] = gen(rng, numEntities, numRelations)
	}
	f, err := triples.NewFactory(ts, numEntities, numRelations)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}

	// 80/10/10 split over the generation order, which is already random.
	nTrain := numTriples * 8 / 10
	nValid := numTriples / 10
	split := func(ts triples.TripleSet) *triples.Factory {
		return &triples.Factory{
			NumEntities:  numEntities,
			NumRelations: numRelations,
			Triples:      ts,
		}
	}
	return &triples.Dataset{
		Name:       name,
		Training:   split(f.Triples[:nTrain]),
		Validation: split(f.Triples[nTrain : nTrain+nValid]),
		Testing:    split(f.Triples[nTrain+nValid:]),
	}, nil
}
