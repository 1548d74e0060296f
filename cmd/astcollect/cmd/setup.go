package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/astcollect/internal/config"
	"github.com/dbsmedya/astcollect/internal/lockfile"
	"github.com/dbsmedya/astcollect/internal/logger"
	"github.com/dbsmedya/astcollect/internal/metrics"
	"github.com/dbsmedya/astcollect/internal/suite"
	"github.com/dbsmedya/astcollect/internal/syntax"
	"github.com/dbsmedya/astcollect/internal/telemetry"
	"github.com/dbsmedya/astcollect/internal/walker"
)

// loadConfig reads the configuration file and applies CLI overrides. A missing file
// falls back to defaults unless --config was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	required := false
	if f := cmd.Flag("config"); f != nil {
		required = f.Changed
	}

	cfg, err := config.LoadOrDefault(GetConfigFile(), required)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(GetCLIOverrides())

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// analysis bundles the collaborators shared by the analyze, list and validate commands.
type analysis struct {
	cfg        *config.Config
	log        *logger.Logger
	operators  []metrics.Operator
	recorder   *telemetry.Recorder
	cache      *walker.Cache
	walker     *walker.Walker
	benchmarks []suite.Benchmark
}

// newAnalysis loads the configuration and builds the walker and benchmark list.
func newAnalysis(cmd *cobra.Command) (*analysis, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ops, err := metrics.Select(cfg.Analysis.Operators)
	if err != nil {
		return nil, err
	}

	rec := telemetry.New()
	cache := walker.NewCache()
	w, err := walker.New(walker.Config{
		Parser:          syntax.NewRustParser(syntax.WithMaxFileSize(cfg.Analysis.MaxFileSize)),
		Operators:       ops,
		Resolver:        lockfile.CargoResolver{},
		DependencyRoot:  cfg.Dependencies.Root,
		Cache:           cache,
		SourceExtension: cfg.Analysis.SourceExtension,
		LockfileName:    cfg.Dependencies.Lockfile,
		Logger:          log,
		Telemetry:       rec,
	})
	if err != nil {
		return nil, err
	}

	benchmarks, err := suite.Discover(cfg.Benchmarks.Root, cfg.Benchmarks.BenchmarkSelected)
	if err != nil {
		return nil, err
	}

	return &analysis{
		cfg:        cfg,
		log:        log,
		operators:  ops,
		recorder:   rec,
		cache:      cache,
		walker:     w,
		benchmarks: benchmarks,
	}, nil
}

// interrupted logs the received signal so the user knows the run is stopping.
func interrupted(log *logger.Logger) func(os.Signal) {
	return func(sig os.Signal) {
		log.Warnw("Received signal, stopping analysis", "signal", sig.String())
	}
}
