package graph

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dbsmedya/astcollect/internal/lockfile"
)

func TestBuild_FromLockfile(t *testing.T) {
	lf := &lockfile.Lockfile{
		Version: 3,
		Packages: []lockfile.Dependency{
			{Name: "app", Version: "0.1.0", Dependencies: []string{"serde", "log 0.4.20"}},
			{Name: "log", Version: "0.4.20", Source: "registry+https://github.com/rust-lang/crates.io-index"},
			{Name: "serde", Version: "1.0.193", Source: "registry+https://github.com/rust-lang/crates.io-index",
				Dependencies: []string{"serde_derive 1.0.193 (registry+https://github.com/rust-lang/crates.io-index)"}},
			{Name: "serde_derive", Version: "1.0.193", Source: "registry+https://github.com/rust-lang/crates.io-index"},
		},
	}

	g, err := NewBuilder(lf).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if g.NodeCount() != 4 {
		t.Errorf("expected 4 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("expected 3 edges, got %d", g.EdgeCount())
	}
	if got := g.GetChildren("app 0.1.0"); !reflect.DeepEqual(got, []string{"serde 1.0.193", "log 0.4.20"}) {
		t.Errorf("app children = %v", got)
	}
	if node := g.GetNode("serde 1.0.193"); node == nil || node.IsWorkspace() {
		t.Error("serde should be a registry crate")
	}

	order, err := g.AnalysisOrder()
	if err != nil {
		t.Fatalf("AnalysisOrder() error: %v", err)
	}
	if order[len(order)-1] != "app 0.1.0" {
		t.Errorf("workspace crate should be analysed last, got %v", order)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pkgs    []lockfile.Dependency
		wantErr string
	}{
		{
			name: "duplicate package",
			pkgs: []lockfile.Dependency{
				{Name: "a", Version: "1.0.0"},
				{Name: "a", Version: "1.0.0"},
			},
			wantErr: "duplicate package",
		},
		{
			name:    "unlocked dependency",
			pkgs:    []lockfile.Dependency{{Name: "a", Version: "1.0.0", Dependencies: []string{"b"}}},
			wantErr: "not locked",
		},
		{
			name:    "unlocked version",
			pkgs:    []lockfile.Dependency{{Name: "a", Version: "1.0.0", Dependencies: []string{"a 2.0.0"}}},
			wantErr: "not locked",
		},
		{
			name: "ambiguous bare name",
			pkgs: []lockfile.Dependency{
				{Name: "app", Version: "0.1.0", Dependencies: []string{"rand"}},
				{Name: "rand", Version: "0.7.3"},
				{Name: "rand", Version: "0.8.5"},
			},
			wantErr: "ambiguous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(&lockfile.Lockfile{Packages: tt.pkgs}).Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuild_NilLockfile(t *testing.T) {
	if _, err := NewBuilder(nil).Build(); err == nil {
		t.Error("expected error for nil lock file")
	}
}

func TestBuild_KeepsCycles(t *testing.T) {
	lf := &lockfile.Lockfile{Packages: []lockfile.Dependency{
		{Name: "a", Version: "1.0.0", Dependencies: []string{"b"}},
		{Name: "b", Version: "1.0.0", Dependencies: []string{"a"}},
	}}

	g, err := NewBuilder(lf).Build()
	if err != nil {
		t.Fatalf("Build() should not reject cycles: %v", err)
	}
	if !g.HasCycle() {
		t.Error("expected the cycle to be present")
	}
}

func TestBuildFromLockfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cargo.lock")
	data := "version = 3\n\n[[package]]\nname = \"a\"\nversion = \"1.0.0\"\ndependencies = [\"b\"]\n\n[[package]]\nname = \"b\"\nversion = \"2.0.0\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := BuildFromLockfile(path)
	if err != nil {
		t.Fatalf("BuildFromLockfile() error: %v", err)
	}
	if got := g.GetChildren("a 1.0.0"); !reflect.DeepEqual(got, []string{"b 2.0.0"}) {
		t.Errorf("children = %v", got)
	}

	if _, err := BuildFromLockfile(filepath.Join(t.TempDir(), "missing.lock")); err == nil {
		t.Error("expected error for missing file")
	}
}
