// Package walker traverses benchmark directories, measures every source file and follows
// lock files into the unpacked dependency tree.
package walker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/dbsmedya/astcollect/internal/lockfile"
	"github.com/dbsmedya/astcollect/internal/logger"
	"github.com/dbsmedya/astcollect/internal/metrics"
	"github.com/dbsmedya/astcollect/internal/stats"
	"github.com/dbsmedya/astcollect/internal/syntax"
	"github.com/dbsmedya/astcollect/internal/telemetry"
)

const defaultSourceExtension = ".rs"

var (
	// ErrDependencyRootMissing is returned by New when the dependency root does not exist.
	ErrDependencyRootMissing = errors.New("dependency root does not exist")

	// ErrUnreadableDir wraps failures to list a directory during a walk.
	ErrUnreadableDir = errors.New("unreadable directory")
)

// Config holds the run-wide collaborators of a Walker.
type Config struct {
	Parser         syntax.Parser
	Operators      []metrics.Operator
	Resolver       lockfile.Resolver
	DependencyRoot string
	Cache          *Cache

	SourceExtension string // default ".rs"
	LockfileName    string // default "Cargo.lock"

	Logger    *logger.Logger      // default no-op
	Telemetry *telemetry.Recorder // optional
}

// Walker measures directory trees. It holds no per-benchmark state and is safe for
// concurrent use as long as each concurrent walk has its own Visited set.
type Walker struct {
	parser    syntax.Parser
	operators []metrics.Operator
	resolver  lockfile.Resolver
	depRoot   string
	cache     *Cache
	sourceExt string
	lockName  string
	log       *logger.Logger
	telemetry *telemetry.Recorder
	flight    singleflight.Group
}

// New validates cfg and creates a Walker. The dependency root must be an existing
// directory; it is made absolute so dependency paths compare canonically.
func New(cfg Config) (*Walker, error) {
	if cfg.Parser == nil {
		return nil, fmt.Errorf("parser is nil")
	}
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("resolver is nil")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is nil")
	}

	depRoot, err := filepath.Abs(cfg.DependencyRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependency root: %w", err)
	}
	info, err := os.Stat(depRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDependencyRootMissing, cfg.DependencyRoot)
	}

	w := &Walker{
		parser:    cfg.Parser,
		operators: cfg.Operators,
		resolver:  cfg.Resolver,
		depRoot:   depRoot,
		cache:     cfg.Cache,
		sourceExt: cfg.SourceExtension,
		lockName:  cfg.LockfileName,
		log:       cfg.Logger,
		telemetry: cfg.Telemetry,
	}
	if w.operators == nil {
		w.operators = metrics.Default()
	}
	if w.sourceExt == "" {
		w.sourceExt = defaultSourceExtension
	}
	if w.lockName == "" {
		w.lockName = lockfile.DefaultName
	}
	if w.log == nil {
		w.log = logger.NewNop()
	}
	return w, nil
}

// DependencyRoot returns the absolute dependency root.
func (w *Walker) DependencyRoot() string {
	return w.depRoot
}

// Walk measures everything under root for benchmark. Dependencies reached through lock
// files are recorded in visited and counted at most once per Visited set.
func (w *Walker) Walk(ctx context.Context, root, benchmark string, visited *Visited) (stats.Stats, error) {
	if visited == nil {
		return nil, fmt.Errorf("visited set is nil")
	}
	log := w.log.WithBenchmark(benchmark)

	own, refs, err := w.scan(ctx, root, benchmark, log)
	if err != nil {
		return nil, err
	}

	deps := stats.New()
	if err := w.include(ctx, refs, benchmark, visited, deps, log); err != nil {
		return nil, err
	}
	return stats.Sum(own, deps), nil
}

// scan measures the source files under dir and collects the dependencies named by its
// lock files without following them.
func (w *Walker) scan(ctx context.Context, dir, benchmark string, log *logger.Logger) (stats.Stats, []Ref, error) {
	acc := stats.New()
	var refs []Ref
	if err := w.scanDir(ctx, dir, benchmark, acc, &refs, log); err != nil {
		return nil, nil, err
	}
	return acc, refs, nil
}

func (w *Walker) scanDir(ctx context.Context, dir, benchmark string, acc stats.Stats, refs *[]Ref, log *logger.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreadableDir, dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		switch {
		case entry.IsDir():
			if err := w.scanDir(ctx, path, benchmark, acc, refs, log); err != nil {
				return err
			}

		case !entry.Type().IsRegular():
			// symlinks, sockets and devices are not followed

		case strings.HasSuffix(entry.Name(), w.sourceExt):
			if err := w.measureFile(ctx, path, benchmark, acc, log); err != nil {
				return err
			}

		case entry.Name() == w.lockName:
			*refs = append(*refs, w.resolveLockfile(path, log)...)
		}
	}

	return nil
}

// measureFile parses one source file and adds its measurements to acc. Unreadable and
// unparsable files are logged and skipped; only cancellation is returned.
func (w *Walker) measureFile(ctx context.Context, path, benchmark string, acc stats.Stats, log *logger.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithFile(path).Warnw("Skipping unreadable source file", "error", err)
		w.telemetry.ParseFailed("read")
		return nil
	}

	tree, err := w.parser.Parse(ctx, data)
	if err != nil || tree == nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.WithFile(path).Warnw("Skipping source file", "error", err)
		w.telemetry.ParseFailed(failureReason(err))
		return nil
	}
	defer tree.Close()

	metrics.Apply(w.operators, metrics.Input{Tree: tree, Benchmark: benchmark}, acc)
	w.telemetry.FileParsed()
	return nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, syntax.ErrFileTooLarge):
		return "too_large"
	case errors.Is(err, syntax.ErrInvalidContent):
		return "encoding"
	default:
		return "syntax"
	}
}

// resolveLockfile returns the dependencies named by a lock file. A lock file that
// cannot be resolved is logged and yields nothing.
func (w *Walker) resolveLockfile(path string, log *logger.Logger) []Ref {
	deps, err := w.resolver.Resolve(path)
	if err != nil {
		log.WithFile(path).Warnw("Skipping lock file", "error", err)
		w.telemetry.LockfileFailed()
		return nil
	}
	w.telemetry.LockfileRead()

	refs := make([]Ref, 0, len(deps))
	for _, dep := range deps {
		refs = append(refs, Ref{Name: dep.String(), Path: dep.Path(w.depRoot)})
	}
	return refs
}

// include folds every present, not yet visited dependency of refs into acc, followed
// depth-first by the dependencies its own lock files name.
func (w *Walker) include(ctx context.Context, refs []Ref, benchmark string, visited *Visited, acc stats.Stats, log *logger.Logger) error {
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}

		depLog := log.WithDependency(ref.Name)

		info, err := os.Stat(ref.Path)
		if err != nil || !info.IsDir() {
			depLog.Debugw("Dependency not present", "path", ref.Path)
			w.telemetry.DependencySkipped(telemetry.SkipMissing)
			continue
		}

		if !visited.Add(ref.Path) {
			w.telemetry.DependencySkipped(telemetry.SkipVisited)
			continue
		}

		entry, err := w.dependency(ctx, ref, benchmark, depLog)
		if err != nil {
			return err
		}
		acc.Combine(entry.Stats)

		if err := w.include(ctx, entry.Deps, benchmark, visited, acc, log); err != nil {
			return err
		}
	}

	return nil
}

// dependency returns the cache entry for ref, scanning its directory on a miss.
// Concurrent misses for the same path share one scan.
func (w *Walker) dependency(ctx context.Context, ref Ref, benchmark string, log *logger.Logger) (Entry, error) {
	if e, ok := w.cache.Get(ref.Path); ok {
		log.Debugw("Dependency served from cache")
		w.telemetry.DependencyCacheHit()
		return e, nil
	}

	v, err, _ := w.flight.Do(ref.Path, func() (interface{}, error) {
		if e, ok := w.cache.load(ref.Path); ok {
			return e, nil
		}

		log.Infow("Analyzing dependency", "path", ref.Path)
		own, refs, err := w.scan(ctx, ref.Path, benchmark, log)
		if err != nil {
			return nil, err
		}

		e := Entry{Stats: own, Deps: refs}
		w.cache.Store(ref.Path, e)
		w.telemetry.DependencyWalked()
		return e, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return v.(Entry).clone(), nil
}
