package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keshon/wit/internal/config"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != config.Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.DefaultBranch != "master" {
		t.Fatalf("default branch = %q", cfg.DefaultBranch)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "history:\n  mode: compat\nlog:\n  debug: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.History.Mode != config.HistoryCompat {
		t.Fatalf("history.mode = %q", cfg.History.Mode)
	}
	if !cfg.Log.Debug {
		t.Fatal("log.debug not read")
	}
	if cfg.Merge.Strategy != config.StrategyPositional || cfg.Log.File != config.DefaultLogFile {
		t.Fatalf("defaults not filled: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "history: [unclosed"},
		{"bad mode", "history:\n  mode: sometimes\n"},
		{"bad strategy", "merge:\n  strategy: recursive\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := config.Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultBranch = "trunk"
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, config.RepoDir), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.EvalSymlinks(root)
	for _, start := range []string{root, nested} {
		got, _ := filepath.EvalSymlinks(config.FindRoot(start))
		if got != want {
			t.Fatalf("FindRoot(%s) = %q, want %q", start, got, want)
		}
	}

	if got := config.FindRoot(t.TempDir()); got != "" {
		t.Fatalf("expected no root outside a repository, got %q", got)
	}
}

func TestNewPaths(t *testing.T) {
	p := config.NewPaths("/w")
	if p.Refs != filepath.Join("/w", ".wit", "images", "references.txt") {
		t.Fatalf("refs path = %q", p.Refs)
	}
	if p.Staging != filepath.Join("/w", ".wit", "staging_area") {
		t.Fatalf("staging path = %q", p.Staging)
	}
	if p.Activated != filepath.Join("/w", ".wit", "activated.txt") {
		t.Fatalf("activated path = %q", p.Activated)
	}
}
