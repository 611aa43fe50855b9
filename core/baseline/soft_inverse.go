package baseline

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/viterin/vek"
	"gonum.org/v1/gonum/mat"

	"github.com/weiweivv2222/pykeen/core/sparse"
	"github.com/weiweivv2222/pykeen/core/triples"
)

// rowCacheSize bounds how many propagated dense rows are kept per direction.
// A full table would cost numRelations × numEntities floats.
const rowCacheSize = 512

// SoftInverseTriple scores completions by propagating evidence through
// relation similarity: tail evidence from relations similar to the query's
// relation, plus head evidence from relations similar to its inverse. It is
// the only baseline sensitive to relation semantics.
type SoftInverseTriple struct {
	evaluationOnly
	sim       *sparse.CSR
	simInv    *sparse.CSR
	relToHead *sparse.CSR
	relToTail *sparse.CSR

	numEntities int

	// Propagated rows depend only on the query relation, which repeats
	// heavily within evaluation batches. Cached rows are immutable.
	tailRows *lru.Cache[int32, []float64]
	headRows *lru.Cache[int32, []float64]
}

// NewSoftInverseTriple builds the direct and inverse relation-similarity
// matrices plus the relation-to-entity count matrices. Entries of the
// similarity matrices strictly below threshold are pruned; pass NoThreshold
// to keep all.
func NewSoftInverseTriple(f *triples.Factory, threshold float64) (*SoftInverseTriple, error) {
	sim, err := RelationSimilarity(f, false, threshold)
	if err != nil {
		return nil, err
	}
	simInv, err := RelationSimilarity(f, true, threshold)
	if err != nil {
		return nil, err
	}
	relToHead, err := Cooccurrence(f, RoleRelation, RoleHead, false)
	if err != nil {
		return nil, err
	}
	relToTail, err := Cooccurrence(f, RoleRelation, RoleTail, false)
	if err != nil {
		return nil, err
	}
	tailRows, err := lru.New[int32, []float64](rowCacheSize)
	if err != nil {
		return nil, err
	}
	headRows, err := lru.New[int32, []float64](rowCacheSize)
	if err != nil {
		return nil, err
	}
	return &SoftInverseTriple{
		sim:         sim,
		simInv:      simInv,
		relToHead:   relToHead,
		relToTail:   relToTail,
		numEntities: f.NumEntities,
		tailRows:    tailRows,
		headRows:    headRows,
	}, nil
}

func (m *SoftInverseTriple) ScoreTail(hrBatch [][]int32) (*mat.Dense, error) {
	return m.propagate(hrBatch, 1, m.relToTail, m.relToHead, m.tailRows)
}

func (m *SoftInverseTriple) ScoreHead(rtBatch [][]int32) (*mat.Dense, error) {
	return m.propagate(rtBatch, 0, m.relToHead, m.relToTail, m.headRows)
}

// propagate fills each output row with the evidence for its query relation:
// sim-weighted rows of direct plus simInv-weighted rows of inverse.
func (m *SoftInverseTriple) propagate(
	batch [][]int32,
	relColumn int,
	direct, inverse *sparse.CSR,
	cache *lru.Cache[int32, []float64],
) (*mat.Dense, error) {
	if err := checkBatch(batch); err != nil {
		return nil, err
	}
	out := mat.NewDense(len(batch), m.numEntities, nil)
	for i, row := range batch {
		r := row[relColumn]
		copy(out.RawRowView(i), m.relationRow(r, direct, inverse, cache))
	}
	return out, nil
}

func (m *SoftInverseTriple) relationRow(
	r int32,
	direct, inverse *sparse.CSR,
	cache *lru.Cache[int32, []float64],
) []float64 {
	if row, ok := cache.Get(r); ok {
		return row
	}
	row := make([]float64, m.numEntities)
	simCols, simVals := m.sim.Row(int(r))
	direct.AccumulateRows(simCols, simVals, row)

	invCols, invVals := m.simInv.Row(int(r))
	scratch := make([]float64, m.numEntities)
	inverse.AccumulateRows(invCols, invVals, scratch)
	vek.Add_Inplace(row, scratch)

	cache.Add(r, row)
	return row
}
