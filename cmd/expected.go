package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weiweivv2222/pykeen/core/config"
	"github.com/weiweivv2222/pykeen/core/datasets"
	"github.com/weiweivv2222/pykeen/core/eval"
)

var expectedPattern string

var expectedCmd = &cobra.Command{
	Use:   "expected",
	Short: "Compute expected metrics under a uniformly random scorer",
	Long: `For each selected dataset, computes the candidate-set sizes of every
split under the filtered protocol and the closed-form metrics a uniformly
random scorer would achieve, as an analytic reference for trained models.`,
	RunE: runExpected,
}

func init() {
	expectedCmd.Flags().StringVar(&expectedPattern, "datasets", "*", "Glob pattern selecting datasets")
	rootCmd.AddCommand(expectedCmd)
}

func runExpected(cmd *cobra.Command, args []string) error {
	manager, err := config.NewManager(configPath)
	if err != nil {
		return err
	}
	cfg := manager.Config()

	names, err := datasets.Match(expectedPattern)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no datasets match %q", expectedPattern)
	}

	for _, name := range names {
		d, err := datasets.Get(name)
		if err != nil {
			return err
		}
		report := eval.BuildExpectedReport(d)

		dir := filepath.Join(cfg.Output.Dir, name, "analysis")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create analysis directory: %w", err)
		}
		path := filepath.Join(dir, "expected_metrics.json")
		data, err := json.MarshalIndent(report, "", "    ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write expected metrics: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", name, path)
	}
	return nil
}
