package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
)

// RenderMetricBoxPlot writes an HTML box plot of one metric's distribution
// across trials, one box per dataset, one series per model.
func RenderMetricBoxPlot(records []Record, metric, outputPath string) error {
	datasetSet := make(map[string]struct{})
	modelSet := make(map[string]struct{})
	values := make(map[[2]string][]float64)
	for _, r := range records {
		v, ok := r.Metrics[metric]
		if !ok {
			continue
		}
		datasetSet[r.Dataset] = struct{}{}
		modelSet[r.Model] = struct{}{}
		key := [2]string{r.Dataset, r.Model}
		values[key] = append(values[key], v)
	}
	if len(values) == 0 {
		return fmt.Errorf("no values recorded for metric %q", metric)
	}

	datasetNames := sortedKeys(datasetSet)
	modelNames := sortedKeys(modelSet)

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "900px",
			Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Baseline benchmark: %s", metric),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	box.SetXAxis(datasetNames)
	for _, model := range modelNames {
		series := make([]opts.BoxPlotData, len(datasetNames))
		for i, dataset := range datasetNames {
			series[i] = opts.BoxPlotData{Value: fiveNumberSummary(values[[2]string{dataset, model}])}
		}
		box.AddSeries(model, series)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plot directory: %w", err)
		}
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()
	if err := box.Render(f); err != nil {
		return fmt.Errorf("render %s plot: %w", metric, err)
	}
	return nil
}

// fiveNumberSummary returns [min, q1, median, q3, max] as expected by the
// box plot series.
func fiveNumberSummary(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{0, 0, 0, 0, 0}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return []float64{
		sorted[0],
		stat.Quantile(0.25, stat.Empirical, sorted, nil),
		stat.Quantile(0.5, stat.Empirical, sorted, nil),
		stat.Quantile(0.75, stat.Empirical, sorted, nil),
		sorted[len(sorted)-1],
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
