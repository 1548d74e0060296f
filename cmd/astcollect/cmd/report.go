package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/astcollect/internal/report"
)

var (
	reportInput   string
	reportMetrics []string
	reportNoTeX   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render tables and a summary from an existing results file",
	Long: `Report reads a results JSON written by analyze and renders the LaTeX
tables and the console summary again, without walking any source.

Useful for changing the sort order or column count of the tables.

Example:
  astcollect report --input out/src-code-analyze-results.json --sort name`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "",
		"Results JSON to read (default <output.dir>/<output.json_file>)")
	reportCmd.Flags().StringSliceVar(&reportMetrics, "metrics", nil,
		"Only show these metrics in the summary")
	reportCmd.Flags().BoolVar(&reportNoTeX, "no-tex", false,
		"Skip writing LaTeX tables")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	input := reportInput
	if input == "" {
		input = filepath.Join(cfg.Output.Dir, cfg.Output.JSONFile)
	}

	doc, err := report.ReadFile(input)
	if err != nil {
		return err
	}
	if doc.Len() == 0 {
		return fmt.Errorf("no benchmarks in %s", input)
	}

	out := cfg.Output
	if reportNoTeX {
		out.TeX = false
	}
	out.Summary = true

	return render(cmd, doc, out, reportMetrics)
}
