package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/astcollect/internal/lockfile"
	"github.com/dbsmedya/astcollect/internal/metrics"
	"github.com/dbsmedya/astcollect/internal/suite"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and run preflight checks",
	Long: `Validate checks the configuration file and the directories it points at
without parsing any Rust source.

Checks performed:
  - Configuration syntax and required fields
  - Benchmark root is readable
  - Dependency root exists
  - Operator names are known
  - Benchmark discovery and manifests
  - Every Cargo.lock below a benchmark parses

Example:
  astcollect validate --config astcollect.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		cmd.Printf("❌ %v\n", err)
		return err
	}

	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n\n", GetConfigFile())

	hasErrors := false
	check := func(name string, err error) bool {
		if err != nil {
			cmd.Printf("❌ %s: %v\n", name, err)
			hasErrors = true
			return false
		}
		cmd.Printf("✅ %s\n", name)
		return true
	}

	check("Configuration", nil)
	check("Benchmark root "+cfg.Benchmarks.Root, requireDir(cfg.Benchmarks.Root))
	check("Dependency root "+cfg.Dependencies.Root, requireDir(cfg.Dependencies.Root))

	ops, err := metrics.Select(cfg.Analysis.Operators)
	if check("Operators", err) {
		cmd.Printf("   %d enabled\n", len(ops))
	}

	benchmarks, err := suite.Discover(cfg.Benchmarks.Root, cfg.Benchmarks.BenchmarkSelected)
	if check("Benchmark discovery", err) {
		cmd.Printf("   %d benchmark(s)\n", len(benchmarks))
	}

	for _, b := range benchmarks {
		cmd.Printf("\n--- Benchmark: %s ---\n", b.Name)
		if !check("Source "+b.Path, requireDir(b.Path)) {
			continue
		}

		locks, err := suite.LockfilesUnder(b.Path, cfg.Dependencies.Lockfile)
		if !check("Lock file scan", err) {
			continue
		}
		for _, path := range locks {
			lf, err := lockfile.Read(path)
			if check(path, err) {
				cmd.Printf("   %d package(s)\n", len(lf.Packages))
			}
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	cmd.Println("\n=== Validation Complete ===")
	cmd.Println("✅ Configuration is ready for analysis")
	return nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
