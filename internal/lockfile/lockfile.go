// Package lockfile reads Cargo.lock files and maps their packages onto an unpacked
// dependency directory.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultName is the lock file name the walker looks for.
const DefaultName = "Cargo.lock"

// Lockfile is the decoded content of a Cargo.lock.
type Lockfile struct {
	Version  int          `toml:"version"`
	Packages []Dependency `toml:"package"`
}

// Dependency is one [[package]] entry.
type Dependency struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Checksum     string   `toml:"checksum"`
	Dependencies []string `toml:"dependencies"`
}

// String renders the dependency as "name vX.Y.Z".
func (d Dependency) String() string {
	return fmt.Sprintf("%s v%s", d.Name, d.Version)
}

// ID is the "name version" form used in the dependencies list of other packages.
func (d Dependency) ID() string {
	return d.Name + " " + d.Version
}

// Dir is the directory name of the unpacked crate, "name-version".
func (d Dependency) Dir() string {
	return d.Name + "-" + d.Version
}

// Path returns the candidate location of the unpacked crate under root. The path may
// not exist.
func (d Dependency) Path(root string) string {
	return filepath.Join(root, d.Dir())
}

// IsRegistry reports whether the package comes from a registry rather than the workspace.
func (d Dependency) IsRegistry() bool {
	return strings.HasPrefix(d.Source, "registry+") || strings.HasPrefix(d.Source, "sparse+")
}

// Requirement is one entry of a package's dependencies list.
type Requirement struct {
	Name    string
	Version string // empty when the lock file lists the bare name
}

// Requirements parses the dependencies list. Entries take the forms "name",
// "name version" and "name version (source)".
func (d Dependency) Requirements() []Requirement {
	reqs := make([]Requirement, 0, len(d.Dependencies))
	for _, raw := range d.Dependencies {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		req := Requirement{Name: fields[0]}
		if len(fields) > 1 {
			req.Version = fields[1]
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// Parse decodes Cargo.lock content.
func Parse(data []byte) (*Lockfile, error) {
	var lf Lockfile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to decode lock file: %w", err)
	}

	for i, pkg := range lf.Packages {
		if pkg.Name == "" || pkg.Version == "" {
			return nil, fmt.Errorf("package entry %d is missing name or version", i)
		}
	}
	return &lf, nil
}

// Read parses the lock file at path.
func Read(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}

	lf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lf, nil
}

// Resolver turns a lock file into the ordered list of dependencies it declares.
type Resolver interface {
	Resolve(path string) ([]Dependency, error)
}

// CargoResolver resolves Cargo.lock files. Packages are returned in file order.
type CargoResolver struct{}

// Resolve reads the lock file at path.
func (CargoResolver) Resolve(path string) ([]Dependency, error) {
	lf, err := Read(path)
	if err != nil {
		return nil, err
	}
	return lf.Packages, nil
}
