package triples

import (
	"fmt"
	"math/rand"
)

// Dataset is a train/validation/test partition over shared vocabularies.
type Dataset struct {
	Name       string
	Training   *Factory
	Validation *Factory
	Testing    *Factory
}

// NumEntities returns the entity vocabulary size of the training split.
func (d *Dataset) NumEntities() int { return d.Training.NumEntities }

// NumRelations returns the relation vocabulary size of the training split.
func (d *Dataset) NumRelations() int { return d.Training.NumRelations }

// AllTriples concatenates the three splits in training, validation, testing
// order.
func (d *Dataset) AllTriples() TripleSet {
	out := make(TripleSet, 0, len(d.Training.Triples)+len(d.Validation.Triples)+len(d.Testing.Triples))
	out = append(out, d.Training.Triples...)
	out = append(out, d.Validation.Triples...)
	out = append(out, d.Testing.Triples...)
	return out
}

// Remix re-derives the partition from the pooled triples with the same split
// sizes under a deterministic shuffle. The same seed always yields the same
// partition, so trial indices double as resplit seeds.
func (d *Dataset) Remix(seed int64) *Dataset {
	pool := d.AllTriples()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	nTrain := len(d.Training.Triples)
	nValid := len(d.Validation.Triples)
	split := func(ts TripleSet) *Factory {
		return &Factory{
			NumEntities:  d.NumEntities(),
			NumRelations: d.NumRelations(),
			Triples:      ts,
		}
	}
	return &Dataset{
		Name:       d.Name,
		Training:   split(pool[:nTrain]),
		Validation: split(pool[nTrain : nTrain+nValid]),
		Testing:    split(pool[nTrain+nValid:]),
	}
}

// Summary is a one-line statistics record for a dataset.
func (d *Dataset) Summary() string {
	return fmt.Sprintf(
		"%s: %d entities, %d relations, %d/%d/%d train/valid/test triples",
		d.Name, d.NumEntities(), d.NumRelations(),
		len(d.Training.Triples), len(d.Validation.Triples), len(d.Testing.Triples),
	)
}
