package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/weiweivv2222/pykeen/core/baseline"
	"github.com/weiweivv2222/pykeen/core/bench"
	"github.com/weiweivv2222/pykeen/core/config"
	"github.com/weiweivv2222/pykeen/core/datasets"
)

var (
	benchTrials    int
	benchBatchSize int
	benchWorkers   int
	benchDatasets  []string
	benchPlot      bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the non-parametric baseline benchmark",
	Long: `Runs every selected baseline configuration against every selected
dataset over repeated randomized resplits, and tabulates the filtered
rank-based metrics per trial.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchTrials, "trials", 0, "Trials per unit (overrides config)")
	benchCmd.Flags().IntVar(&benchBatchSize, "batch-size", 0, "Scoring batch size (overrides config)")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "Concurrent benchmark units (overrides config)")
	benchCmd.Flags().StringSliceVar(&benchDatasets, "datasets", nil, "Glob patterns selecting datasets (overrides config)")
	benchCmd.Flags().BoolVar(&benchPlot, "plot", false, "Render metric distribution plots")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	manager, err := config.NewManager(configPath)
	if err != nil {
		return err
	}
	cfg := manager.Config()

	trials := cfg.Bench.Trials
	if benchTrials > 0 {
		trials = benchTrials
	}
	batchSize := cfg.Bench.BatchSize
	if benchBatchSize > 0 {
		batchSize = benchBatchSize
	}
	workers := cfg.Bench.MaxConcurrent
	if benchWorkers > 0 {
		workers = benchWorkers
	}
	patterns := cfg.Bench.Datasets
	if len(benchDatasets) > 0 {
		patterns = benchDatasets
	}

	names, err := matchDatasets(patterns)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no datasets match %v", patterns)
	}

	harness := bench.NewHarness(slog.Default())
	harness.Trials = trials
	harness.BatchSize = batchSize
	harness.MaxConcurrent = workers

	units := bench.Units(names, baseline.DefaultConfigs())
	records := harness.Run(cmd.Context(), units)
	if len(records) == 0 {
		return fmt.Errorf("benchmark produced no records")
	}

	if err := bench.WriteTable(os.Stdout, records, harness.Ks); err != nil {
		return err
	}
	return persistRun(cfg, harness, records)
}

func persistRun(cfg *config.Config, harness *bench.Harness, records []bench.Record) error {
	runID := uuid.NewString()
	outDir := cfg.Output.Dir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tablePath := filepath.Join(outDir, cfg.Output.TableFile)
	tableFile, err := os.Create(tablePath)
	if err != nil {
		return fmt.Errorf("create benchmark table: %w", err)
	}
	defer tableFile.Close()
	if err := bench.WriteTSV(tableFile, records, harness.Ks); err != nil {
		return err
	}

	store, err := bench.OpenStore(filepath.Join(outDir, cfg.Output.DatabaseFile))
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.SaveRun(runID, records, harness.Ks); err != nil {
		return err
	}
	slog.Info("benchmark run saved", "run_id", runID, "table", tablePath, "records", len(records))

	if !benchPlot {
		return nil
	}
	plotDir := filepath.Join(outDir, cfg.Output.PlotDir)
	for _, metric := range []string{"mrr", "aamri", "time"} {
		plotRecords := records
		if metric == "time" {
			plotRecords = withTimeMetric(records)
		}
		path := filepath.Join(plotDir, fmt.Sprintf("baseline_benchmark_%s.html", sanitize(metric)))
		if err := bench.RenderMetricBoxPlot(plotRecords, metric, path); err != nil {
			return err
		}
	}
	return nil
}

// withTimeMetric copies records with wall-clock seconds exposed as a metric
// so the plot renderer can treat it uniformly.
func withTimeMetric(records []bench.Record) []bench.Record {
	out := make([]bench.Record, len(records))
	for i, r := range records {
		metrics := make(map[string]float64, len(r.Metrics)+1)
		for k, v := range r.Metrics {
			metrics[k] = v
		}
		metrics["time"] = r.Seconds
		r.Metrics = metrics
		out[i] = r
	}
	return out
}

func sanitize(name string) string {
	return strings.ReplaceAll(name, "@", "_at_")
}

func matchDatasets(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, pattern := range patterns {
		matched, err := datasets.Match(pattern)
		if err != nil {
			return nil, err
		}
		for _, name := range matched {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names, nil
}
