package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/astcollect/internal/config"
	"github.com/dbsmedya/astcollect/internal/driver"
	"github.com/dbsmedya/astcollect/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Collect structural metrics for every benchmark",
	Long: `Analyze walks every benchmark under the benchmark root, parses its Rust
sources and the crates its Cargo.lock files reference, and aggregates the
configured metrics per benchmark.

Outputs:
  - <out>/src-code-analyze-results.json (benchmark -> metric -> value)
  - <out>/src-code-analyze-results-<metric>.tex (one table per metric)
  - a console summary
  - an optional Prometheus textfile (metrics.textfile)

A crate shared by several benchmarks is parsed once per run. Ctrl-C stops
the walk and nothing is written.

Example:
  astcollect analyze --bench-dir benchmarks --dep-dir dependencies --workers 4`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newAnalysis(cmd)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	a.log.Infow("Starting analysis",
		"benchmarks", len(a.benchmarks),
		"dependency_root", a.walker.DependencyRoot(),
		"workers", a.cfg.Analysis.Workers,
	)

	d, err := driver.New(a.walker, a.cfg.Analysis.Workers, a.log, a.recorder)
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(context.Background(), interrupted(a.log))
	defer cancel()

	results, err := d.Run(ctx, a.benchmarks)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			a.log.Warn("Analysis cancelled by user")
			return err
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	a.log.Infow("Analysis complete",
		"benchmarks", len(results),
		"cached_crates", a.cache.Len(),
		"cache_hits", a.cache.Hits(),
		"cache_misses", a.cache.Misses(),
	)

	doc := report.FromResults(results)
	jsonPath := filepath.Join(a.cfg.Output.Dir, a.cfg.Output.JSONFile)
	if err := doc.WriteFile(jsonPath); err != nil {
		return err
	}
	a.log.Infow("Results written", "path", jsonPath)

	if err := render(cmd, doc, a.cfg.Output, nil); err != nil {
		return err
	}

	if a.cfg.Metrics.Textfile != "" {
		if err := a.recorder.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
			return err
		}
		a.log.Infow("Telemetry written", "path", a.cfg.Metrics.Textfile)
	}

	return nil
}

// render writes the TeX tables and the console summary for doc as configured.
// columns restricts the summary to the named metrics.
func render(cmd *cobra.Command, doc *report.Document, out config.OutputConfig, columns []string) error {
	if out.TeX {
		by, err := report.ParseSortBy(out.Sort)
		if err != nil {
			return err
		}
		paths, err := report.WriteTeX(out.Dir, doc, report.TeXOptions{
			Columns: out.Columns,
			Sort:    by,
		})
		if err != nil {
			return err
		}
		for _, p := range paths {
			cmd.Printf("wrote %s\n", p)
		}
	}

	if out.Summary {
		cmd.Println()
		return report.WriteSummary(cmd.OutOrStdout(), doc, report.SummaryOptions{
			Color:   !noColor,
			Metrics: columns,
		})
	}
	return nil
}
