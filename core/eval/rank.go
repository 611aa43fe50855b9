package eval

import (
	"context"
	"fmt"
	"math"

	"github.com/weiweivv2222/pykeen/core/baseline"
	"github.com/weiweivv2222/pykeen/core/triples"
)

// DefaultBatchSize bounds how many queries are scored per call into the
// scorer. Each batch materializes batch × numEntities dense scores.
const DefaultBatchSize = 2048

// Evaluator computes filtered rank-based metrics for any Scorer. Other
// known-true completions of a query's pattern are removed from the candidate
// pool before ranking; the query's own answer never is.
type Evaluator struct {
	Ks        []int
	BatchSize int
}

// NewEvaluator returns an evaluator with the standard benchmark cutoffs.
func NewEvaluator() *Evaluator {
	return &Evaluator{Ks: DefaultKs, BatchSize: DefaultBatchSize}
}

// rankAccumulator folds per-query realistic ranks and their expectations.
type rankAccumulator struct {
	queries     int
	sumRank     float64
	sumInvRank  float64
	sumLogRank  float64
	hits        map[int]int
	sumExpected float64
}

func newRankAccumulator(ks []int) *rankAccumulator {
	hits := make(map[int]int, len(ks))
	for _, k := range ks {
		hits[k] = 0
	}
	return &rankAccumulator{hits: hits}
}

func (a *rankAccumulator) add(rank float64, candidates int) {
	a.queries++
	a.sumRank += rank
	a.sumInvRank += 1 / rank
	a.sumLogRank += math.Log(rank)
	for k := range a.hits {
		if rank <= float64(k) {
			a.hits[k]++
		}
	}
	a.sumExpected += float64(candidates+1) / 2
}

func (a *rankAccumulator) metrics() *RankMetrics {
	q := float64(a.queries)
	meanRank := a.sumRank / q
	expectedRank := a.sumExpected / q
	m := &RankMetrics{
		MRR:    a.sumInvRank / q,
		IAMR:   1 / meanRank,
		IGMR:   math.Exp(-a.sumLogRank / q),
		HitsAt: make(map[int]float64, len(a.hits)),
		AAMR:   meanRank / expectedRank,
	}
	for k, count := range a.hits {
		m.HitsAt[k] = float64(count) / q
	}
	if expectedRank > 1 {
		m.AAMRI = 1 - (meanRank-1)/(expectedRank-1)
	}
	return m
}

// Evaluate scores every evaluation triple on both sides and aggregates the
// filtered realistic ranks. The evaluation triples themselves always count as
// known true; filters adds further splits (typically training and
// validation).
func (e *Evaluator) Evaluate(
	ctx context.Context,
	scorer baseline.Scorer,
	evalTriples triples.TripleSet,
	numEntities int,
	filters ...triples.TripleSet,
) (*RankMetrics, error) {
	if len(evalTriples) == 0 {
		return nil, fmt.Errorf("no evaluation triples")
	}
	batchSize := e.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	idx := buildFilterIndex(append([]triples.TripleSet{evalTriples}, filters...)...)
	acc := newRankAccumulator(e.Ks)

	for start := 0; start < len(evalTriples); start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunk := evalTriples[start:min(start+batchSize, len(evalTriples))]

		hrBatch := make([][]int32, len(chunk))
		rtBatch := make([][]int32, len(chunk))
		for i, t := range chunk {
			hrBatch[i] = []int32{t.Head, t.Relation}
			rtBatch[i] = []int32{t.Relation, t.Tail}
		}

		tailScores, err := scorer.ScoreTail(hrBatch)
		if err != nil {
			return nil, fmt.Errorf("score tails: %w", err)
		}
		headScores, err := scorer.ScoreHead(rtBatch)
		if err != nil {
			return nil, fmt.Errorf("score heads: %w", err)
		}

		for i, t := range chunk {
			tailRank, tailCand := filteredRank(
				tailScores.RawRowView(i), t.Tail, idx.knownTails(t.Head, t.Relation), numEntities,
			)
			acc.add(tailRank, tailCand)

			headRank, headCand := filteredRank(
				headScores.RawRowView(i), t.Head, idx.knownHeads(t.Relation, t.Tail), numEntities,
			)
			acc.add(headRank, headCand)
		}
	}
	return acc.metrics(), nil
}

// filteredRank computes the realistic rank of the true entity within the
// filtered candidate pool, along with the pool's size. known holds every
// entity completing the query's pattern, including the true answer; all of
// known except the answer is removed from the pool.
func filteredRank(scores []float64, truth int32, known []int32, numEntities int) (rank float64, candidates int) {
	trueScore := scores[truth]
	greater, equal := 0, 0
	for _, s := range scores {
		switch {
		case s > trueScore:
			greater++
		case s == trueScore:
			equal++
		}
	}
	// Remove the filtered-out entities' contributions. The true answer stays.
	for _, e := range known {
		if e == truth {
			continue
		}
		switch s := scores[e]; {
		case s > trueScore:
			greater--
		case s == trueScore:
			equal--
		}
	}
	// equal still counts the true answer itself.
	optimistic := float64(greater + 1)
	pessimistic := float64(greater + equal)
	return (optimistic + pessimistic) / 2, numEntities - (len(known) - 1)
}
