package eval

import "fmt"

// DefaultKs are the hits@k cutoffs used by the benchmark.
var DefaultKs = []int{1, 5, 10, 50, 100}

// MetricNames lists every benchmark metric in report order.
func MetricNames(ks []int) []string {
	names := []string{"mrr", "iamr", "igmr"}
	for _, k := range ks {
		names = append(names, fmt.Sprintf("hits@%d", k))
	}
	return append(names, "aamr", "aamri")
}

// RankMetrics aggregates rank-based results over all queries of one
// evaluation run, using realistic (tie-averaged) ranks.
type RankMetrics struct {
	// MRR is the mean reciprocal rank (inverse harmonic mean rank).
	MRR float64
	// IAMR is the inverse arithmetic mean rank.
	IAMR float64
	// IGMR is the inverse geometric mean rank.
	IGMR float64
	// HitsAt maps cutoff k to the fraction of queries ranked within k.
	HitsAt map[int]float64
	// AAMR is the mean rank divided by its expectation under a uniformly
	// random scorer; 1 means chance-level.
	AAMR float64
	// AAMRI rescales AAMR to (-inf, 1]: 1 is a perfect ranking, 0 chance.
	AAMRI float64
}

// Get returns the named metric, using the benchmark column names
// ("mrr", "hits@10", ...).
func (m *RankMetrics) Get(name string) (float64, bool) {
	switch name {
	case "mrr":
		return m.MRR, true
	case "iamr":
		return m.IAMR, true
	case "igmr":
		return m.IGMR, true
	case "aamr":
		return m.AAMR, true
	case "aamri":
		return m.AAMRI, true
	}
	var k int
	if _, err := fmt.Sscanf(name, "hits@%d", &k); err == nil {
		v, ok := m.HitsAt[k]
		return v, ok
	}
	return 0, false
}
