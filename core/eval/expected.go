package eval

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/weiweivv2222/pykeen/core/triples"
)

// ExpectedKs are the cutoffs reported in expected-metric records.
var ExpectedKs = []int{1, 3, 5, 10}

// ExpectedMeanRank is the closed-form mean rank a uniformly random scorer
// achieves over the given candidate-set sizes: the mean of (n+1)/2.
func ExpectedMeanRank(sizes []int) float64 {
	ranks := make([]float64, len(sizes))
	for i, n := range sizes {
		ranks[i] = float64(n+1) / 2
	}
	return stat.Mean(ranks, nil)
}

// ExpectedHitsAtK is the closed-form hits@k of a uniformly random scorer:
// the mean of min(k, n)/n, the probability a uniform rank lands within k.
func ExpectedHitsAtK(sizes []int, k int) float64 {
	hits := make([]float64, len(sizes))
	for i, n := range sizes {
		hits[i] = float64(min(k, n)) / float64(n)
	}
	return stat.Mean(hits, nil)
}

// ExpectedMetrics maps metric name to its expectation for one side.
type ExpectedMetrics map[string]float64

func expectedMetricsFor(sizes []int) ExpectedMetrics {
	out := ExpectedMetrics{"mean_rank": ExpectedMeanRank(sizes)}
	for _, k := range ExpectedKs {
		out[fmt.Sprintf("hits_at_%d", k)] = ExpectedHitsAtK(sizes, k)
	}
	return out
}

// ExpectedReport is keyed split → side → metric, with stable keys across
// runs so records stay comparable.
type ExpectedReport map[string]map[string]ExpectedMetrics

// Sides reported per split.
const (
	SideHead = "head"
	SideTail = "tail"
	SideBoth = "both"
)

// BuildExpectedReport computes expected metrics for every split of the
// dataset. Each split is filtered against the true triples known at its
// stage: training stands alone, validation filters training, and testing
// filters training plus validation.
func BuildExpectedReport(d *triples.Dataset) ExpectedReport {
	splits := []struct {
		name    string
		triples triples.TripleSet
		filters []triples.TripleSet
	}{
		{"training", d.Training.Triples, nil},
		{"validation", d.Validation.Triples, []triples.TripleSet{d.Training.Triples}},
		{"testing", d.Testing.Triples, []triples.TripleSet{d.Training.Triples, d.Validation.Triples}},
	}

	report := make(ExpectedReport, len(splits))
	for _, split := range splits {
		sizes := CandidateSetSizes(split.triples, d.NumEntities(), split.filters...)
		report[split.name] = map[string]ExpectedMetrics{
			SideHead: expectedMetricsFor(sizes.Head),
			SideTail: expectedMetricsFor(sizes.Tail),
			SideBoth: expectedMetricsFor(sizes.Both()),
		}
	}
	return report
}
