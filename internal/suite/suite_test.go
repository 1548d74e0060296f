package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func names(bs []Benchmark) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func TestDiscover_SortedDirectories(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "zlib")
	mkdir(t, root, "actix")
	mkdir(t, root, ".git")
	write(t, filepath.Join(root, "README.md"), "not a benchmark")

	bs, err := Discover(root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"actix", "zlib"}, names(bs))
	assert.Equal(t, filepath.Join(root, "actix"), bs[0].Path)
	assert.Equal(t, DefaultProfile, bs[0].Profile)
	assert.Equal(t, DefaultScenario, bs[0].Scenario)
}

func TestDiscover_EmptyRoot(t *testing.T) {
	bs, err := Discover(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, bs)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestDiscover_Manifest(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a", ManifestName), "name: renamed\nsrc: crates/core\nprofile: debug\n")
	write(t, filepath.Join(root, "b", ManifestName), "skip: true\n")
	mkdir(t, root, "c")

	bs, err := Discover(root, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"renamed", "c"}, names(bs))

	assert.Equal(t, filepath.Join(root, "a"), bs[0].Dir)
	assert.Equal(t, filepath.Join(root, "a", "crates", "core"), bs[0].Path)
	assert.Equal(t, "debug", bs[0].Profile)
	assert.Equal(t, DefaultScenario, bs[0].Scenario)
}

func TestDiscover_ManifestErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"invalid yaml", "name: [unterminated"},
		{"escaping src", "src: ../other"},
		{"absolute src", "src: /etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			write(t, filepath.Join(root, "bench", ManifestName), tt.manifest)

			_, err := Discover(root, nil)
			assert.Error(t, err)
		})
	}
}

func TestDiscover_DuplicateNames(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "one")
	write(t, filepath.Join(root, "two", ManifestName), "name: one\n")

	_, err := Discover(root, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"one"`)
}

func TestDiscover_Filter(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "a")
	mkdir(t, root, "b")
	mkdir(t, root, "c")

	bs, err := Discover(root, func(name string) bool { return name != "b" })
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, names(bs))
}

func TestReadManifest_Missing(t *testing.T) {
	m, err := ReadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Manifest{}, m)
}

func TestLockfilesUnder(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "Cargo.lock"), "")
	write(t, filepath.Join(root, "sub", "crate", "Cargo.lock"), "")
	write(t, filepath.Join(root, "sub", "Cargo.toml"), "")

	found, err := LockfilesUnder(root, "Cargo.lock")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Cargo.lock"),
		filepath.Join(root, "sub", "crate", "Cargo.lock"),
	}, found)
}

func TestLockfilesUnder_MissingDir(t *testing.T) {
	_, err := LockfilesUnder(filepath.Join(t.TempDir(), "missing"), "Cargo.lock")
	assert.Error(t, err)
}
