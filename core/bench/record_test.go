package bench

import (
	"strings"
	"testing"
)

func sampleRecords() []Record {
	metrics := func(mrr, aamri float64) map[string]float64 {
		return map[string]float64{
			"mrr":      mrr,
			"iamr":     mrr,
			"igmr":     mrr,
			"hits@1":   0.5,
			"hits@10":  1,
			"hits@100": 1,
			"aamr":     0.5,
			"aamri":    aamri,
		}
	}
	return []Record{
		{
			Dataset: "chains", Entities: 64, Relations: 4, Triples: 480,
			Trial: 0, Model: "PseudoType", Normalize: true,
			Seconds: 0.25, Metrics: metrics(0.8, 0.9),
		},
		{
			Dataset: "chains", Entities: 64, Relations: 4, Triples: 480,
			Trial: 1, Model: "PseudoType", Normalize: true,
			Seconds: 0.75, Metrics: metrics(0.6, 0.7),
		},
		{
			Dataset: "chains", Entities: 64, Relations: 4, Triples: 480,
			Trial: 0, Model: "SoftInverseTriple", Threshold: 0.97,
			Seconds: 1.5, Metrics: metrics(0.4, 0.5),
		},
	}
}

func TestColumns(t *testing.T) {
	cols := Columns([]int{1, 10})
	want := []string{
		"dataset", "entities", "relations", "triples",
		"trial", "model", "normalize", "threshold", "time",
		"mrr", "iamr", "igmr", "hits@1", "hits@10", "aamr", "aamri",
	}
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d", len(cols), len(want))
	}
	for i, name := range want {
		if cols[i] != name {
			t.Errorf("column %d = %q, want %q", i, cols[i], name)
		}
	}
}

func TestWriteTSV(t *testing.T) {
	var b strings.Builder
	if err := WriteTSV(&b, sampleRecords(), []int{1, 10}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 records", len(lines))
	}
	header := strings.Split(lines[0], "\t")
	for _, line := range lines[1:] {
		if got := len(strings.Split(line, "\t")); got != len(header) {
			t.Errorf("row has %d fields, header has %d", got, len(header))
		}
	}
	if !strings.HasPrefix(lines[1], "chains\t64\t4\t480\t0\tPseudoType\ttrue\t0\t0.25") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestWriteTable(t *testing.T) {
	var b strings.Builder
	if err := WriteTable(&b, sampleRecords(), []int{1, 10}); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "SoftInverseTriple") {
		t.Error("table output missing model column")
	}
	if strings.Contains(out, "\t") {
		t.Error("aligned table should not contain raw tabs")
	}
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(sampleRecords(), []int{1, 10})

	byKey := make(map[string]Summary)
	for _, s := range summaries {
		byKey[s.Dataset+"/"+s.Model+"/"+s.Metric] = s
	}

	pseudo, ok := byKey["chains/PseudoType/mrr"]
	if !ok {
		t.Fatal("missing PseudoType mrr summary")
	}
	if got, want := pseudo.Mean, 0.7; got != want {
		t.Errorf("mean mrr = %v, want %v", got, want)
	}
	if pseudo.StdDev == 0 {
		t.Error("two distinct trials must have nonzero stddev")
	}

	soft, ok := byKey["chains/SoftInverseTriple/mrr"]
	if !ok {
		t.Fatal("missing SoftInverseTriple mrr summary")
	}
	if got, want := soft.Mean, 0.4; got != want {
		t.Errorf("mean mrr = %v, want %v", got, want)
	}

	// Sorted: model groups are contiguous and ordered.
	for i := 1; i < len(summaries); i++ {
		if summaries[i-1].Model > summaries[i].Model {
			t.Fatal("summaries not sorted by model")
		}
	}
}
