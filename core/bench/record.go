// Package bench drives the baseline benchmark: datasets crossed with
// baseline configurations, repeated over randomized resplits, with metrics
// tabulated per trial.
package bench

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"github.com/weiweivv2222/pykeen/core/eval"
)

// Record is one benchmark row: a single trial of one baseline configuration
// on one dataset.
type Record struct {
	Dataset   string
	Entities  int
	Relations int
	Triples   int
	Trial     int
	Model     string
	Normalize bool
	Threshold float64
	Seconds   float64
	Metrics   map[string]float64
}

// Columns returns the benchmark table header for the given hits@k cutoffs.
func Columns(ks []int) []string {
	cols := []string{
		"dataset", "entities", "relations", "triples",
		"trial", "model", "normalize", "threshold", "time",
	}
	return append(cols, eval.MetricNames(ks)...)
}

func (r Record) row(ks []int) []string {
	fields := []string{
		r.Dataset,
		strconv.Itoa(r.Entities),
		strconv.Itoa(r.Relations),
		strconv.Itoa(r.Triples),
		strconv.Itoa(r.Trial),
		r.Model,
		strconv.FormatBool(r.Normalize),
		formatFloat(r.Threshold),
		formatFloat(r.Seconds),
	}
	for _, name := range eval.MetricNames(ks) {
		fields = append(fields, formatFloat(r.Metrics[name]))
	}
	return fields
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// WriteTSV writes the records as a tab-separated table with a header row.
func WriteTSV(w io.Writer, records []Record, ks []int) error {
	if _, err := fmt.Fprintln(w, strings.Join(Columns(ks), "\t")); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, strings.Join(r.row(ks), "\t")); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable renders an aligned text table for terminal output.
func WriteTable(w io.Writer, records []Record, ks []int) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(Columns(ks), "\t"))
	for _, r := range records {
		fmt.Fprintln(tw, strings.Join(r.row(ks), "\t"))
	}
	return tw.Flush()
}

// Summary aggregates one metric across the trials of one dataset and model.
type Summary struct {
	Dataset string
	Model   string
	Metric  string
	Mean    float64
	StdDev  float64
}

// Summarize reduces records trial-wise: mean and standard deviation of every
// metric per (dataset, model) group, sorted by dataset, model, metric.
func Summarize(records []Record, ks []int) []Summary {
	type groupKey struct{ dataset, model string }
	groups := make(map[groupKey][]Record)
	for _, r := range records {
		key := groupKey{r.Dataset, r.Model}
		groups[key] = append(groups[key], r)
	}

	var out []Summary
	for key, group := range groups {
		for _, name := range eval.MetricNames(ks) {
			values := make([]float64, len(group))
			for i, r := range group {
				values[i] = r.Metrics[name]
			}
			out = append(out, Summary{
				Dataset: key.dataset,
				Model:   key.model,
				Metric:  name,
				Mean:    stat.Mean(values, nil),
				StdDev:  stat.StdDev(values, nil),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dataset != out[j].Dataset {
			return out[i].Dataset < out[j].Dataset
		}
		if out[i].Model != out[j].Model {
			return out[i].Model < out[j].Model
		}
		return out[i].Metric < out[j].Metric
	})
	return out
}
