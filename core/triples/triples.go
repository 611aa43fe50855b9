// Package triples defines the integer-encoded triple model shared by the
// baseline scorers, the evaluators, and the benchmark harness.
package triples

import (
	"errors"
	"fmt"
	"sort"
)

// Triple is a single (head, relation, tail) statement with ids mapped into
// dense vocabularies.
type Triple struct {
	Head     int32
	Relation int32
	Tail     int32
}

// TripleSet is an ordered sequence of triples. Duplicates are allowed; order
// only matters for reproducible iteration.
type TripleSet []Triple

var errEmptyTripleSet = errors.New("triple set is empty")

// Factory bundles a triple set with its vocabulary sizes. It is the read-only
// input contract for matrix construction and evaluation.
type Factory struct {
	NumEntities  int
	NumRelations int
	Triples      TripleSet
}

// NewFactory validates that every id falls inside the declared vocabularies.
func NewFactory(ts TripleSet, numEntities, numRelations int) (*Factory, error) {
	if numEntities <= 0 || numRelations <= 0 {
		return nil, fmt.Errorf("vocabulary sizes must be positive, got %d entities and %d relations", numEntities, numRelations)
	}
	for i, t := range ts {
		if t.Head < 0 || int(t.Head) >= numEntities || t.Tail < 0 || int(t.Tail) >= numEntities {
			return nil, fmt.Errorf("triple %d: entity id out of range [0, %d)", i, numEntities)
		}
		if t.Relation < 0 || int(t.Relation) >= numRelations {
			return nil, fmt.Errorf("triple %d: relation id out of range [0, %d)", i, numRelations)
		}
	}
	return &Factory{NumEntities: numEntities, NumRelations: numRelations, Triples: ts}, nil
}

// NumTriples returns the number of triples, counting duplicates.
func (f *Factory) NumTriples() int { return len(f.Triples) }

// LabeledTriple is a raw (head, relation, tail) statement before id mapping.
type LabeledTriple struct {
	Head     string
	Relation string
	Tail     string
}

// FromLabeled maps labeled triples into a factory with sorted-label
// vocabularies, so the same input always produces the same encoding.
func FromLabeled(labeled []LabeledTriple) (*Factory, error) {
	if len(labeled) == 0 {
		return nil, errEmptyTripleSet
	}
	entitySet := make(map[string]struct{})
	relationSet := make(map[string]struct{})
	for _, lt := range labeled {
		entitySet[lt.Head] = struct{}{}
		entitySet[lt.Tail] = struct{}{}
		relationSet[lt.Relation] = struct{}{}
	}
	entityIDs := labelIndex(entitySet)
	relationIDs := labelIndex(relationSet)

	ts := make(TripleSet, len(labeled))
	for i, lt := range labeled {
		ts[i] = Triple{
			Head:     entityIDs[lt.Head],
			Relation: relationIDs[lt.Relation],
			Tail:     entityIDs[lt.Tail],
		}
	}
	return NewFactory(ts, len(entityIDs), len(relationIDs))
}

func labelIndex(set map[string]struct{}) map[string]int32 {
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	index := make(map[string]int32, len(labels))
	for i, label := range labels {
		index[label] = int32(i)
	}
	return index
}
