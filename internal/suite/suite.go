// Package suite discovers the benchmarks of a benchmark root directory.
package suite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the optional per-benchmark manifest file.
const ManifestName = "benchmark.yaml"

// Provenance defaults recorded with every result.
const (
	DefaultProfile  = "check"
	DefaultScenario = "full"
)

// Manifest is the content of benchmark.yaml. Every field is optional.
type Manifest struct {
	Name     string `yaml:"name"`
	Src      string `yaml:"src"` // sub-directory to analyse, relative to the benchmark
	Skip     bool   `yaml:"skip"`
	Profile  string `yaml:"profile"`
	Scenario string `yaml:"scenario"`
}

// Benchmark is one discovered benchmark.
type Benchmark struct {
	Name     string
	Dir      string // benchmark directory
	Path     string // directory the walker starts from
	Profile  string
	Scenario string
}

// Filter decides whether a benchmark name is analysed. A nil Filter accepts everything.
type Filter func(name string) bool

// Discover lists the benchmarks under root sorted by directory name. Every non-hidden
// sub-directory is a benchmark unless its manifest sets skip or the filter rejects it.
func Discover(root string, filter Filter) ([]Benchmark, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark root: %w", err)
	}

	var benchmarks []Benchmark
	seen := make(map[string]string)

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		dir := filepath.Join(root, entry.Name())
		manifest, err := ReadManifest(dir)
		if err != nil {
			return nil, err
		}
		if manifest.Skip {
			continue
		}

		b, err := fromManifest(dir, entry.Name(), manifest)
		if err != nil {
			return nil, err
		}
		if filter != nil && !filter(b.Name) {
			continue
		}
		if prev, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("benchmark name %q used by both %s and %s", b.Name, prev, dir)
		}
		seen[b.Name] = dir

		benchmarks = append(benchmarks, b)
	}

	return benchmarks, nil
}

// ReadManifest reads dir/benchmark.yaml. A missing manifest yields the zero Manifest.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest

	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to parse %s: %w", filepath.Join(dir, ManifestName), err)
	}
	return m, nil
}

func fromManifest(dir, dirName string, m Manifest) (Benchmark, error) {
	b := Benchmark{
		Name:     dirName,
		Dir:      dir,
		Path:     dir,
		Profile:  DefaultProfile,
		Scenario: DefaultScenario,
	}

	if m.Name != "" {
		b.Name = m.Name
	}
	if m.Profile != "" {
		b.Profile = m.Profile
	}
	if m.Scenario != "" {
		b.Scenario = m.Scenario
	}

	if m.Src != "" {
		src := filepath.Clean(filepath.FromSlash(m.Src))
		if filepath.IsAbs(src) || src == ".." || strings.HasPrefix(src, ".."+string(filepath.Separator)) {
			return b, fmt.Errorf("%s: src %q must be a path inside the benchmark", dir, m.Src)
		}
		b.Path = filepath.Join(dir, src)
	}

	return b, nil
}

// LockfilesUnder returns every file called name below dir, sorted. Symlinks are not
// followed.
func LockfilesUnder(dir, name string) ([]string, error) {
	var found []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && d.Name() == name {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(found)
	return found, nil
}
