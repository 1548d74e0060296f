package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/astcollect/internal/metrics"
	"github.com/dbsmedya/astcollect/internal/suite"
)

var listOperators bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered benchmarks",
	Long: `List displays the benchmarks found under the benchmark root after the
include/exclude filters and benchmark.yaml manifests are applied.

With --operators it lists the metric operators instead, marking the ones
enabled by the configuration.

Example:
  astcollect list --config astcollect.yaml
  astcollect list --operators`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listOperators, "operators", false,
		"List metric operators instead of benchmarks")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if listOperators {
		selected, err := metrics.Select(cfg.Analysis.Operators)
		if err != nil {
			return err
		}
		printOperators(cmd, selected)
		return nil
	}

	benchmarks, err := suite.Discover(cfg.Benchmarks.Root, cfg.Benchmarks.BenchmarkSelected)
	if err != nil {
		return err
	}

	if len(benchmarks) == 0 {
		cmd.Printf("No benchmarks found in %s\n", cfg.Benchmarks.Root)
		return nil
	}

	cmd.Printf("Benchmarks in %s:\n\n", cfg.Benchmarks.Root)
	for i, b := range benchmarks {
		cmd.Printf("%d. %s\n", i+1, b.Name)
		cmd.Printf("   Source:    %s\n", b.Path)
		cmd.Printf("   Profile:   %s\n", b.Profile)
		cmd.Printf("   Scenario:  %s\n", b.Scenario)

		locks, err := suite.LockfilesUnder(b.Path, cfg.Dependencies.Lockfile)
		if err != nil {
			return err
		}
		cmd.Printf("   Lockfiles: %d\n", len(locks))
		cmd.Println()
	}

	cmd.Printf("Total: %d benchmark(s)\n", len(benchmarks))
	return nil
}

func printOperators(cmd *cobra.Command, selected []metrics.Operator) {
	enabled := make(map[string]bool, len(selected))
	for _, op := range selected {
		enabled[op.Name()] = true
	}

	cmd.Println("Metric operators (registry order):")
	cmd.Println()
	for i, op := range metrics.Default() {
		mark := " "
		if enabled[op.Name()] {
			mark = "x"
		}
		cmd.Printf("  [%s] %d. %-16s -> %s\n", mark, i+1, op.Name(), op.Metric())
	}
}
