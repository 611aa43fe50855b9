package baseline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/weiweivv2222/pykeen/core/sparse"
	"github.com/weiweivv2222/pykeen/core/triples"
)

// PseudoType scores completions by the relation's observed head and tail
// distributions alone; the known endpoint of the query is ignored.
type PseudoType struct {
	evaluationOnly
	headPerRelation *sparse.CSR
	tailPerRelation *sparse.CSR
	numEntities     int
}

// NewPseudoType builds the relation-to-head and relation-to-tail
// co-occurrence matrices from the factory's triples.
func NewPseudoType(f *triples.Factory, normalize bool) (*PseudoType, error) {
	headPerRelation, err := Cooccurrence(f, RoleRelation, RoleHead, normalize)
	if err != nil {
		return nil, err
	}
	tailPerRelation, err := Cooccurrence(f, RoleRelation, RoleTail, normalize)
	if err != nil {
		return nil, err
	}
	return &PseudoType{
		headPerRelation: headPerRelation,
		tailPerRelation: tailPerRelation,
		numEntities:     f.NumEntities,
	}, nil
}

func (m *PseudoType) ScoreTail(hrBatch [][]int32) (*mat.Dense, error) {
	return scatterRowsByColumn(hrBatch, 1, m.tailPerRelation, m.numEntities)
}

func (m *PseudoType) ScoreHead(rtBatch [][]int32) (*mat.Dense, error) {
	return scatterRowsByColumn(rtBatch, 0, m.headPerRelation, m.numEntities)
}

// scatterRowsByColumn materializes, for each batch row, the dense row of
// source selected by the id in the given batch column.
func scatterRowsByColumn(batch [][]int32, column int, source *sparse.CSR, numEntities int) (*mat.Dense, error) {
	if err := checkBatch(batch); err != nil {
		return nil, err
	}
	out := mat.NewDense(len(batch), numEntities, nil)
	for i, row := range batch {
		source.ScatterRow(int(row[column]), out.RawRowView(i))
	}
	return out, nil
}
