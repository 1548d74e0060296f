package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/astcollect/internal/graph"
	"github.com/dbsmedya/astcollect/internal/lockfile"
	"github.com/dbsmedya/astcollect/internal/suite"
)

var planBenchmark string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the dependency plan for each benchmark",
	Long: `Plan resolves every Cargo.lock below each benchmark and shows the crates
the analysis will walk, dependencies first.

The plan shows:
  - Lock files found per benchmark
  - Crate order (leaves first)
  - Crates missing under the dependency root (skipped by analyze)
  - Crates shared with other benchmarks (served from the run-wide cache)
  - Dependency cycles, if any

Example:
  astcollect plan --config astcollect.yaml --benchmark ripgrep`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planBenchmark, "benchmark", "b", "",
		"Only show the plan for this benchmark")

	rootCmd.AddCommand(planCmd)
}

// benchmarkPlan is the resolved dependency graph of one lock file.
type benchmarkPlan struct {
	lockfile string
	graph    *graph.Graph
	order    []string
	cycle    *graph.CycleError
	err      error
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	benchmarks, err := suite.Discover(cfg.Benchmarks.Root, cfg.Benchmarks.BenchmarkSelected)
	if err != nil {
		return err
	}

	depRoot, err := filepath.Abs(cfg.Dependencies.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve dependency root: %w", err)
	}

	plans := make(map[string][]benchmarkPlan, len(benchmarks))
	users := make(map[string]map[string]bool)
	for _, b := range benchmarks {
		locks, err := suite.LockfilesUnder(b.Path, cfg.Dependencies.Lockfile)
		if err != nil {
			return err
		}
		for _, path := range locks {
			p := resolvePlan(path)
			plans[b.Name] = append(plans[b.Name], p)
			if p.graph == nil {
				continue
			}
			for _, id := range p.graph.AllNodes() {
				if users[id] == nil {
					users[id] = make(map[string]bool)
				}
				users[id][b.Name] = true
			}
		}
	}

	w := cmd.OutOrStdout()
	shown := 0
	for _, b := range benchmarks {
		if planBenchmark != "" && b.Name != planBenchmark {
			continue
		}
		shown++
		printBenchmarkPlan(w, b, plans[b.Name], depRoot, users)
		fmt.Fprintln(w)
	}

	if planBenchmark != "" && shown == 0 {
		return fmt.Errorf("benchmark %q not found", planBenchmark)
	}
	return nil
}

func resolvePlan(path string) benchmarkPlan {
	p := benchmarkPlan{lockfile: path}

	g, err := graph.BuildFromLockfile(path)
	if err != nil {
		p.err = err
		return p
	}
	p.graph = g

	order, err := g.AnalysisOrder()
	if err != nil {
		var cycleErr *graph.CycleError
		if !errors.As(err, &cycleErr) {
			p.err = err
			return p
		}
		p.cycle = cycleErr
		order = g.AllNodes()
	}
	p.order = order
	return p
}

func printBenchmarkPlan(w io.Writer, b suite.Benchmark, plans []benchmarkPlan, depRoot string, users map[string]map[string]bool) {
	printHeader(w, "Dependency Plan: %s", b.Name)
	fmt.Fprintln(w)
	printSection(w, "Benchmark")
	fmt.Fprintf(w, "  Source:          %s\n", b.Path)
	fmt.Fprintf(w, "  Dependency Root: %s\n", depRoot)
	fmt.Fprintf(w, "  Lock Files:      %d\n", len(plans))

	for _, p := range plans {
		fmt.Fprintln(w)
		printSection(w, p.lockfile)

		if p.err != nil {
			fmt.Fprintf(w, "  %s %v\n", color.Red.Sprint("unreadable:"), p.err)
			continue
		}
		if p.cycle != nil {
			fmt.Fprintf(w, "  %s %s\n", color.Yellow.Sprint("cycle:"),
				strings.Join(p.cycle.Info.CycleParticipants, ", "))
		}

		var missing, shared int
		for i, id := range p.order {
			node := p.graph.GetNode(id)
			status, ok := crateStatus(node, depRoot)
			if !ok && !node.IsWorkspace() {
				missing++
			}

			var notes []string
			if others := len(users[id]) - 1; others > 0 {
				shared++
				notes = append(notes, color.Cyan.Sprintf("shared with %d", others))
			}
			if n := p.graph.OutDegree(id); n > 0 {
				notes = append(notes, fmt.Sprintf("%d deps", n))
			}

			fmt.Fprintf(w, "  [%d] %-40s %s", i+1, id, status)
			if len(notes) > 0 {
				fmt.Fprintf(w, " (%s)", strings.Join(notes, ", "))
			}
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "  Crates: %d, missing: %d, shared: %d\n", len(p.order), missing, shared)
	}
}

// crateStatus reports whether the walker will find node under depRoot.
func crateStatus(node *graph.Node, depRoot string) (string, bool) {
	dep := lockfile.Dependency{Name: node.Name, Version: node.Version}
	info, err := os.Stat(dep.Path(depRoot))
	present := err == nil && info.IsDir()

	switch {
	case node.IsWorkspace():
		return color.FgDarkGray.Sprint("workspace"), present
	case present:
		return color.Green.Sprint("present"), true
	default:
		return color.Red.Sprint("missing"), false
	}
}

// printHeader prints a formatted header
func printHeader(w io.Writer, format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := len(title) + 4
	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "[%s]\n", title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)+2))
}
