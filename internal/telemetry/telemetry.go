// Package telemetry counts what a collection run did. Counters live on a private
// Prometheus registry that can be exported as a node-exporter textfile.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "astcollect"

// Skip reasons for dependencies that were not walked.
const (
	SkipMissing = "missing"
	SkipVisited = "visited"
)

// Recorder holds the run counters. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	filesParsed       prometheus.Counter
	parseFailures     *prometheus.CounterVec
	lockfilesRead     prometheus.Counter
	lockfileFailures  prometheus.Counter
	depsWalked        prometheus.Counter
	depCacheHits      prometheus.Counter
	depsSkipped       *prometheus.CounterVec
	benchmarks        prometheus.Counter
	benchmarkDuration prometheus.Histogram
}

// New creates a Recorder on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		filesParsed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "walker",
			Name:      "files_parsed_total",
			Help:      "Source files parsed and measured",
		}),
		parseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "walker",
			Name:      "parse_failures_total",
			Help:      "Source files skipped because they could not be read or parsed",
		}, []string{"reason"}),
		lockfilesRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "walker",
			Name:      "lockfiles_read_total",
			Help:      "Lock files resolved",
		}),
		lockfileFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "walker",
			Name:      "lockfile_failures_total",
			Help:      "Lock files skipped because they could not be resolved",
		}),
		depsWalked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dependencies",
			Name:      "walked_total",
			Help:      "Dependency directories walked from disk",
		}),
		depCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dependencies",
			Name:      "cache_hits_total",
			Help:      "Dependencies served from the run-wide cache",
		}),
		depsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dependencies",
			Name:      "skipped_total",
			Help:      "Dependencies not walked, by reason",
		}, []string{"reason"}),
		benchmarks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "driver",
			Name:      "benchmarks_total",
			Help:      "Benchmarks analysed",
		}),
		benchmarkDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "driver",
			Name:      "benchmark_duration_seconds",
			Help:      "Wall time spent analysing one benchmark",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),
	}
}

// Registry exposes the underlying registry, for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) FileParsed() {
	if r != nil {
		r.filesParsed.Inc()
	}
}

// ParseFailed records a skipped source file. reason is a short label such as "syntax".
func (r *Recorder) ParseFailed(reason string) {
	if r != nil {
		r.parseFailures.WithLabelValues(reason).Inc()
	}
}

func (r *Recorder) LockfileRead() {
	if r != nil {
		r.lockfilesRead.Inc()
	}
}

func (r *Recorder) LockfileFailed() {
	if r != nil {
		r.lockfileFailures.Inc()
	}
}

func (r *Recorder) DependencyWalked() {
	if r != nil {
		r.depsWalked.Inc()
	}
}

func (r *Recorder) DependencyCacheHit() {
	if r != nil {
		r.depCacheHits.Inc()
	}
}

// DependencySkipped records a dependency that was not walked (SkipMissing or SkipVisited).
func (r *Recorder) DependencySkipped(reason string) {
	if r != nil {
		r.depsSkipped.WithLabelValues(reason).Inc()
	}
}

// BenchmarkDone records one analysed benchmark and how long it took.
func (r *Recorder) BenchmarkDone(seconds float64) {
	if r != nil {
		r.benchmarks.Inc()
		r.benchmarkDuration.Observe(seconds)
	}
}

// WriteTextfile writes the registry in the Prometheus text format to path, creating the
// parent directory if needed.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return fmt.Errorf("telemetry recorder is not initialized")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
