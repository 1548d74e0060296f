// Package driver runs the walker over every benchmark of a suite and collects one
// result per benchmark.
package driver

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/astcollect/internal/logger"
	"github.com/dbsmedya/astcollect/internal/stats"
	"github.com/dbsmedya/astcollect/internal/suite"
	"github.com/dbsmedya/astcollect/internal/telemetry"
	"github.com/dbsmedya/astcollect/internal/walker"
)

// Result is the aggregate for one benchmark. Iterations, Profile and Scenario are
// provenance carried into the results document.
type Result struct {
	Benchmark  string
	Iterations int
	Profile    string
	Scenario   string
	Stats      stats.Stats
	Duration   time.Duration
}

// Walker is the part of walker.Walker the driver needs.
type Walker interface {
	Walk(ctx context.Context, root, benchmark string, visited *walker.Visited) (stats.Stats, error)
}

// Driver analyses benchmarks, sequentially or on a bounded worker pool. The dependency
// cache lives in the Walker and is shared by every benchmark; each benchmark gets its
// own Visited set.
type Driver struct {
	walker    Walker
	workers   int
	log       *logger.Logger
	telemetry *telemetry.Recorder
}

// New creates a Driver. workers below 1 are treated as 1.
func New(w Walker, workers int, log *logger.Logger, rec *telemetry.Recorder) (*Driver, error) {
	if w == nil {
		return nil, fmt.Errorf("walker is nil")
	}
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Driver{walker: w, workers: workers, log: log, telemetry: rec}, nil
}

// Run analyses benchmarks and returns their results in input order. The first walk
// error aborts the run.
func (d *Driver) Run(ctx context.Context, benchmarks []suite.Benchmark) ([]Result, error) {
	results := make([]Result, len(benchmarks))

	if d.workers == 1 {
		for i, b := range benchmarks {
			r, err := d.analyze(ctx, b)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, b := range benchmarks {
		i, b := i, b
		g.Go(func() error {
			r, err := d.analyze(gCtx, b)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Driver) analyze(ctx context.Context, b suite.Benchmark) (Result, error) {
	log := d.log.WithBenchmark(b.Name)
	log.Infow("Analyzing benchmark", "path", b.Path)

	start := time.Now()
	visited := walker.NewVisited()
	s, err := d.walker.Walk(ctx, b.Path, b.Name, visited)
	if err != nil {
		return Result{}, fmt.Errorf("benchmark %s: %w", b.Name, err)
	}
	elapsed := time.Since(start)

	d.telemetry.BenchmarkDone(elapsed.Seconds())
	log.Infow("Benchmark analyzed", "files", s["file_number"], "dependencies", visited.Len(), "duration", elapsed)

	return Result{
		Benchmark:  b.Name,
		Iterations: 0,
		Profile:    b.Profile,
		Scenario:   b.Scenario,
		Stats:      s,
		Duration:   elapsed,
	}, nil
}
