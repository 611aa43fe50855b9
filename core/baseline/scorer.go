package baseline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Scorer is the scoring surface shared by the non-parametric baselines and
// trained embedding models, so either can drive the same evaluation pipeline.
// Rows of the returned matrices are dense scores over all candidate entities;
// higher means more plausible.
type Scorer interface {
	// ScoreTail scores every entity as tail completion for each (head,
	// relation) row of the batch.
	ScoreTail(hrBatch [][]int32) (*mat.Dense, error)

	// ScoreHead scores every entity as head completion for each (relation,
	// tail) row of the batch.
	ScoreHead(rtBatch [][]int32) (*mat.Dense, error)

	// ScoreTriples scores fully specified (head, relation, tail) rows.
	ScoreTriples(hrtBatch [][]int32) (*mat.Dense, error)

	// ScoreRelations scores every relation for each (head, tail) row.
	ScoreRelations(htBatch [][]int32) (*mat.Dense, error)
}

// evaluationOnly rejects the scoring modes the non-parametric baselines never
// need: they are evaluated, not trained.
type evaluationOnly struct{}

func (evaluationOnly) ScoreTriples([][]int32) (*mat.Dense, error) {
	return nil, fmt.Errorf("full-triple scoring: %w", ErrUnsupportedScoringMode)
}

func (evaluationOnly) ScoreRelations([][]int32) (*mat.Dense, error) {
	return nil, fmt.Errorf("relation scoring: %w", ErrUnsupportedScoringMode)
}

// checkBatch validates that a query batch is non-empty with two-column rows.
func checkBatch(batch [][]int32) error {
	if len(batch) == 0 {
		return fmt.Errorf("empty batch: %w", ErrInvalidBatchShape)
	}
	for i, row := range batch {
		if len(row) != 2 {
			return fmt.Errorf("batch row %d has %d columns: %w", i, len(row), ErrInvalidBatchShape)
		}
	}
	return nil
}
