package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiweivv2222/pykeen/core/triples"
)

func TestExpectedMeanRank_UniformTen(t *testing.T) {
	sizes := make([]int, 100)
	for i := range sizes {
		sizes[i] = 10
	}
	assert.Equal(t, 5.5, ExpectedMeanRank(sizes))
}

func TestExpectedMeanRank_Mixed(t *testing.T) {
	// (n+1)/2 per query: (1+1)/2=1, (3+1)/2=2, (5+1)/2=3 -> mean 2.
	assert.InDelta(t, 2.0, ExpectedMeanRank([]int{1, 3, 5}), 1e-12)
}

func TestExpectedHitsAtK_MonotoneInK(t *testing.T) {
	sizes := []int{2, 7, 13, 40}
	prev := 0.0
	for k := 1; k <= 50; k++ {
		h := ExpectedHitsAtK(sizes, k)
		assert.GreaterOrEqual(t, h, prev, "hits@%d must not decrease", k)
		prev = h
	}
}

func TestExpectedHitsAtK_SaturatesAtOne(t *testing.T) {
	sizes := []int{3, 5, 8}
	assert.Equal(t, 1.0, ExpectedHitsAtK(sizes, 8), "k >= every n means a guaranteed hit")
	assert.Equal(t, 1.0, ExpectedHitsAtK(sizes, 100))
	assert.Less(t, ExpectedHitsAtK(sizes, 4), 1.0)
}

func TestExpectedHitsAtK_Exact(t *testing.T) {
	// min(k,n)/n with k=2: 2/4 and 2/8 -> mean 0.375.
	assert.InDelta(t, 0.375, ExpectedHitsAtK([]int{4, 8}, 2), 1e-12)
}

func TestBuildExpectedReport_Shape(t *testing.T) {
	ts := triples.TripleSet{
		{Head: 0, Relation: 0, Tail: 1},
		{Head: 1, Relation: 0, Tail: 2},
		{Head: 2, Relation: 1, Tail: 0},
		{Head: 0, Relation: 1, Tail: 2},
		{Head: 1, Relation: 1, Tail: 0},
	}
	split := func(lo, hi int) *triples.Factory {
		f, err := triples.NewFactory(ts[lo:hi], 3, 2)
		require.NoError(t, err)
		return f
	}
	d := &triples.Dataset{
		Name:       "report",
		Training:   split(0, 3),
		Validation: split(3, 4),
		Testing:    split(4, 5),
	}

	report := BuildExpectedReport(d)
	require.Len(t, report, 3)
	for _, splitName := range []string{"training", "validation", "testing"} {
		sides, ok := report[splitName]
		require.True(t, ok, splitName)
		for _, side := range []string{SideHead, SideTail, SideBoth} {
			metrics, ok := sides[side]
			require.True(t, ok, side)
			assert.Contains(t, metrics, "mean_rank")
			for _, k := range ExpectedKs {
				assert.Contains(t, metrics, metricKey(k))
			}
			assert.GreaterOrEqual(t, metrics["mean_rank"], 1.0)
		}
	}
}

func metricKey(k int) string {
	switch k {
	case 1:
		return "hits_at_1"
	case 3:
		return "hits_at_3"
	case 5:
		return "hits_at_5"
	default:
		return "hits_at_10"
	}
}
