package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ember/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")

	m, ok, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	cfg := m.Config
	if cfg.Package.Name != "demo" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if !cfg.Fold.Cache || cfg.Fold.Jobs != 0 {
		t.Errorf("fold defaults = %+v", cfg.Fold)
	}
	if cfg.Output.Color != "auto" || cfg.Output.MaxDiagnostics != 100 {
		t.Errorf("output defaults = %+v", cfg.Output)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"

[fold]
jobs = 4
cache = false

[output]
color = "never"
max-diagnostics = 25
`)

	m, _, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := m.Config
	if cfg.Fold.Jobs != 4 || cfg.Fold.Cache {
		t.Errorf("fold = %+v", cfg.Fold)
	}
	if cfg.Output.Color != "never" || cfg.Output.MaxDiagnostics != 25 {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := project.Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want it inside %q", path, root)
	}
}

func TestLoadMissingManifestIsNotAnError(t *testing.T) {
	m, ok, err := project.Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok || m != nil {
		t.Error("expected no manifest")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing package", "[fold]\njobs = 1\n", "missing [package]"},
		{"empty name", "[package]\nname = \"\"\n", "missing [package].name"},
		{"negative jobs", "[package]\nname = \"x\"\n[fold]\njobs = -1\n", "[fold].jobs"},
		{"zero limit", "[package]\nname = \"x\"\n[output]\nmax-diagnostics = 0\n", "max-diagnostics"},
		{"bad color", "[package]\nname = \"x\"\n[output]\ncolor = \"sometimes\"\n", "[output].color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeManifest(t, dir, tt.content)
			_, err := project.LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
