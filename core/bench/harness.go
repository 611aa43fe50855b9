package bench

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/weiweivv2222/pykeen/core/baseline"
	"github.com/weiweivv2222/pykeen/core/datasets"
	"github.com/weiweivv2222/pykeen/core/eval"
)

// Unit is one independent piece of benchmark work: a dataset paired with a
// baseline configuration. Units share no mutable state.
type Unit struct {
	Dataset string
	Config  baseline.Config
}

// Units crosses dataset names with baseline configurations.
func Units(names []string, configs []baseline.Config) []Unit {
	out := make([]Unit, 0, len(names)*len(configs))
	for _, name := range names {
		for _, cfg := range configs {
			out = append(out, Unit{Dataset: name, Config: cfg})
		}
	}
	return out
}

// Harness runs benchmark units in parallel with bounded concurrency.
// A failed unit is logged with its identity and skipped; sibling units
// proceed.
type Harness struct {
	Trials        int
	BatchSize     int
	MaxConcurrent int
	Ks            []int
	Logger        *slog.Logger
}

// NewHarness returns a harness with the standard trial count and cutoffs.
func NewHarness(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harness{
		Trials:        10,
		BatchSize:     eval.DefaultBatchSize,
		MaxConcurrent: runtime.NumCPU(),
		Ks:            eval.DefaultKs,
		Logger:        logger,
	}
}

// Run executes every unit and returns the merged records. Each worker
// returns its rows; nothing is accumulated through shared state.
func (h *Harness) Run(ctx context.Context, units []Unit) []Record {
	maxConcurrent := h.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.NumCPU()
	}

	results := make([][]Record, len(units))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			records, err := h.runUnit(ctx, unit)
			if err != nil {
				h.Logger.Error("benchmark unit failed",
					"dataset", unit.Dataset,
					"model", unit.Config.Model,
					"error", err,
				)
				return nil // failure isolation: siblings proceed
			}
			results[i] = records
			return nil
		})
	}
	g.Wait()

	var merged []Record
	for _, records := range results {
		merged = append(merged, records...)
	}
	return merged
}

func (h *Harness) runUnit(ctx context.Context, unit Unit) ([]Record, error) {
	base, err := datasets.Get(unit.Dataset)
	if err != nil {
		return nil, err
	}
	h.Logger.Info("benchmark unit start",
		"dataset", unit.Dataset,
		"model", unit.Config.Model,
		"trials", h.Trials,
	)

	evaluator := &eval.Evaluator{Ks: h.Ks, BatchSize: h.BatchSize}
	records := make([]Record, 0, h.Trials)
	for trial := 0; trial < h.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Seeding the resplit by trial index keeps trials reproducible:
		// the same index always yields the same partition.
		trialSet := base.Remix(int64(trial))

		scorer, err := baseline.Build(unit.Config, trialSet.Training)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		metrics, err := evaluator.Evaluate(
			ctx, scorer,
			trialSet.Testing.Triples,
			trialSet.NumEntities(),
			trialSet.Training.Triples,
			trialSet.Validation.Triples,
		)
		if err != nil {
			return nil, err
		}
		elapsed := time.Since(start)

		values := make(map[string]float64)
		for _, name := range eval.MetricNames(h.Ks) {
			if v, ok := metrics.Get(name); ok {
				values[name] = v
			}
		}
		records = append(records, Record{
			Dataset:   unit.Dataset,
			Entities:  base.NumEntities(),
			Relations: base.NumRelations(),
			Triples:   base.Training.NumTriples(),
			Trial:     trial,
			Model:     unit.Config.Model,
			Normalize: unit.Config.Normalize,
			Threshold: unit.Config.Threshold,
			Seconds:   elapsed.Seconds(),
			Metrics:   values,
		})
	}
	h.Logger.Info("benchmark unit done",
		"dataset", unit.Dataset,
		"model", unit.Config.Model,
		"records", len(records),
	)
	return records, nil
}
