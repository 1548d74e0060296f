package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/astcollect/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string
	benchDir  string
	depDir    string
	outDir    string
	workers   int
	sortBy    string
	include   []string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "astcollect",
	Short: "Structural source metrics for Rust benchmark suites",
	Long: `astcollect parses every Rust source file of a benchmark suite and of the
crates its Cargo.lock files pull in, and aggregates structural metrics per
benchmark.

Features:
  - Tree-sitter based operators (node count, function depth, macro density, ...)
  - Dependency closure resolution through Cargo.lock files
  - Run-wide cache so a crate shared by many benchmarks is analysed once
  - JSON results, LaTeX tables and a console summary`,
	Version:           Version,
	PersistentPreRunE: loadEnvFile,
	SilenceUsage:      true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "astcollect.yaml",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"Environment file loaded before the configuration (ignored when missing)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Location overrides
	rootCmd.PersistentFlags().StringVar(&benchDir, "bench-dir", "",
		"Override benchmark root directory")
	rootCmd.PersistentFlags().StringVar(&depDir, "dep-dir", "",
		"Override dependency root directory")
	rootCmd.PersistentFlags().StringVar(&outDir, "out-dir", "",
		"Override output directory")

	// Analysis overrides
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"Override number of benchmarks analysed concurrently")
	rootCmd.PersistentFlags().StringVar(&sortBy, "sort", "",
		"Override table sort order (value, name)")
	rootCmd.PersistentFlags().StringSliceVar(&include, "include", nil,
		"Only analyse the named benchmarks")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured console output")
}

// loadEnvFile loads the --env-file into the process environment so that ${VAR}
// references in the configuration resolve. Existing variables win.
func loadEnvFile(cmd *cobra.Command, args []string) error {
	if noColor {
		color.Disable()
	}
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}
	return nil
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		BenchDir:  benchDir,
		DepDir:    depDir,
		OutDir:    outDir,
		Workers:   workers,
		Sort:      sortBy,
		Include:   include,
	}
}
