package baseline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/weiweivv2222/pykeen/core/sparse"
	"github.com/weiweivv2222/pykeen/core/triples"
)

// NoThreshold disables similarity pruning.
const NoThreshold = 0.0

// RelationSimilarity builds the sparse relation-by-relation Jaccard overlap
// of entity-pair sets. With toInverse set, the second operand's pairs are
// reversed, measuring how well one relation matches the inverse of another.
// Only pair presence counts; multiplicities are ignored. Entries strictly
// below threshold are dropped from storage; pass NoThreshold to keep all.
func RelationSimilarity(f *triples.Factory, toInverse bool, threshold float64) (*sparse.CSR, error) {
	pairSpace, err := pairSpaceSize(f.NumEntities)
	if err != nil {
		return nil, err
	}

	direct := pairIndicator(f, pairSpace, false)
	second := direct
	if toInverse {
		second = pairIndicator(f, pairSpace, true)
	}

	intersection := direct.IntersectionProduct(second)
	sim := jaccard(intersection, direct, second, f.NumRelations)
	out := sparse.CSRFromDense(sim)
	if threshold > NoThreshold {
		out = out.Threshold(threshold)
	}
	return out, nil
}

// pairSpaceSize checks that numEntities squared is representable before any
// pair code is computed. Silent wraparound would corrupt the indicator.
func pairSpaceSize(numEntities int) (int64, error) {
	n := int64(numEntities)
	if n <= 0 || n > math.MaxInt64/n {
		return 0, fmt.Errorf("%d entities: %w", numEntities, ErrIndexOverflow)
	}
	return n * n, nil
}

func pairIndicator(f *triples.Factory, pairSpace int64, reversed bool) *sparse.Indicator {
	n := int64(f.NumEntities)
	ind := sparse.NewIndicator(f.NumRelations, pairSpace)
	for _, t := range f.Triples {
		first, second := int64(t.Head), int64(t.Tail)
		if reversed {
			first, second = second, first
		}
		ind.Set(int(t.Relation), first*n+second)
	}
	ind.Compact()
	return ind
}

func jaccard(intersection *mat.Dense, a, b *sparse.Indicator, numRelations int) *mat.Dense {
	out := mat.NewDense(numRelations, numRelations, nil)
	for i := 0; i < numRelations; i++ {
		cardA := float64(a.RowCardinality(i))
		for j := 0; j < numRelations; j++ {
			inter := intersection.At(i, j)
			union := cardA + float64(b.RowCardinality(j)) - inter
			if union == 0 {
				continue // 0/0 defined as 0
			}
			out.Set(i, j, inter/union)
		}
	}
	return out
}
