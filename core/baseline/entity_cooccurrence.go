package baseline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/weiweivv2222/pykeen/core/sparse"
	"github.com/weiweivv2222/pykeen/core/triples"
)

// EntityCoOccurrence scores completions by which entities co-occur with the
// query's known endpoint anywhere in the graph; the relation is ignored.
type EntityCoOccurrence struct {
	evaluationOnly
	headPerTail *sparse.CSR
	tailPerHead *sparse.CSR
	numEntities int
}

// NewEntityCoOccurrence builds the tail-to-head and head-to-tail
// co-occurrence matrices from the factory's triples.
func NewEntityCoOccurrence(f *triples.Factory, normalize bool) (*EntityCoOccurrence, error) {
	headPerTail, err := Cooccurrence(f, RoleTail, RoleHead, normalize)
	if err != nil {
		return nil, err
	}
	tailPerHead, err := Cooccurrence(f, RoleHead, RoleTail, normalize)
	if err != nil {
		return nil, err
	}
	return &EntityCoOccurrence{
		headPerTail: headPerTail,
		tailPerHead: tailPerHead,
		numEntities: f.NumEntities,
	}, nil
}

func (m *EntityCoOccurrence) ScoreTail(hrBatch [][]int32) (*mat.Dense, error) {
	return scatterRowsByColumn(hrBatch, 0, m.tailPerHead, m.numEntities)
}

func (m *EntityCoOccurrence) ScoreHead(rtBatch [][]int32) (*mat.Dense, error) {
	return scatterRowsByColumn(rtBatch, 1, m.headPerTail, m.numEntities)
}
