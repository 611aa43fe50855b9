package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weiweivv2222/pykeen/core/datasets"
	"github.com/weiweivv2222/pykeen/core/triples"
)

var datasetsPattern string

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Inspect registered datasets",
}

var datasetsSummarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print statistics for each registered dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachDataset(func(d *triples.Dataset) error {
			fmt.Fprintln(cmd.OutOrStdout(), d.Summary())
			return nil
		})
	},
}

var datasetsVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that evaluation splits stay inside the training vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachDataset(func(d *triples.Dataset) error {
			status := "ok"
			if err := verifyCoverage(d); err != nil {
				status = err.Error()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", d.Name, status)
			return nil
		})
	},
}

func init() {
	datasetsCmd.PersistentFlags().StringVar(&datasetsPattern, "datasets", "*", "Glob pattern selecting datasets")
	datasetsCmd.AddCommand(datasetsSummarizeCmd)
	datasetsCmd.AddCommand(datasetsVerifyCmd)
	rootCmd.AddCommand(datasetsCmd)
}

func forEachDataset(fn func(*triples.Dataset) error) error {
	names, err := datasets.Match(datasetsPattern)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no datasets match %q", datasetsPattern)
	}
	for _, name := range names {
		d, err := datasets.Get(name)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

// verifyCoverage checks that every entity and relation referenced by the
// validation and testing splits is observed in training. Filtered evaluation
// of an unseen id cannot be meaningful.
func verifyCoverage(d *triples.Dataset) error {
	entities := make(map[int32]struct{})
	relations := make(map[int32]struct{})
	for _, t := range d.Training.Triples {
		entities[t.Head] = struct{}{}
		entities[t.Tail] = struct{}{}
		relations[t.Relation] = struct{}{}
	}
	for _, split := range []*triples.Factory{d.Validation, d.Testing} {
		for _, t := range split.Triples {
			if _, ok := entities[t.Head]; !ok {
				return fmt.Errorf("entity %d unseen in training", t.Head)
			}
			if _, ok := entities[t.Tail]; !ok {
				return fmt.Errorf("entity %d unseen in training", t.Tail)
			}
			if _, ok := relations[t.Relation]; !ok {
				return fmt.Errorf("relation %d unseen in training", t.Relation)
			}
		}
	}
	return nil
}
