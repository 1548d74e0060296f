package graph

import (
	"fmt"

	"github.com/dbsmedya/astcollect/internal/lockfile"
)

// Builder constructs a dependency graph from a parsed lock file.
type Builder struct {
	lock *lockfile.Lockfile
}

// NewBuilder creates a new graph builder for the given lock file.
func NewBuilder(lock *lockfile.Lockfile) *Builder {
	return &Builder{lock: lock}
}

// Build adds one node per package and one edge per declared dependency. Cycles are
// kept in the graph; call Validate or AnalysisOrder to detect them.
func (b *Builder) Build() (*Graph, error) {
	if b.lock == nil {
		return nil, fmt.Errorf("lock file is nil")
	}

	g := NewGraph()
	byName := make(map[string][]string)

	for _, pkg := range b.lock.Packages {
		id := pkg.ID()
		if g.HasNode(id) {
			return nil, fmt.Errorf("duplicate package: %q appears multiple times in the lock file", id)
		}
		g.AddNode(id, &Node{
			Name:    pkg.Name,
			Version: pkg.Version,
			Source:  pkg.Source,
		})
		byName[pkg.Name] = append(byName[pkg.Name], id)
	}

	for _, pkg := range b.lock.Packages {
		for _, req := range pkg.Requirements() {
			target, err := resolveRequirement(g, byName, req)
			if err != nil {
				return nil, fmt.Errorf("package %q: %w", pkg.ID(), err)
			}
			g.AddEdge(pkg.ID(), target)
		}
	}

	return g, nil
}

// resolveRequirement maps a dependencies entry to a package ID. A bare name must match
// exactly one package.
func resolveRequirement(g *Graph, byName map[string][]string, req lockfile.Requirement) (string, error) {
	if req.Version != "" {
		id := req.Name + " " + req.Version
		if !g.HasNode(id) {
			return "", fmt.Errorf("dependency %q is not locked", id)
		}
		return id, nil
	}

	candidates := byName[req.Name]
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("dependency %q is not locked", req.Name)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("dependency %q is ambiguous (%d locked versions)", req.Name, len(candidates))
	}
}

// BuildFromLockfile reads and parses the lock file at path and builds its graph.
func BuildFromLockfile(path string) (*Graph, error) {
	lf, err := lockfile.Read(path)
	if err != nil {
		return nil, err
	}
	return NewBuilder(lf).Build()
}
