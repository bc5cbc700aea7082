// Package config provides configuration management for the environment inspector.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"env-inspector/internal/model"
)

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	want := []string{"pandas", "numpy", "matplotlib", "seaborn", "scikit-learn", "tensorflow", "torch"}
	if got := Names(catalog); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if catalog.Title != DefaultCatalogTitle {
		t.Errorf("Title = %q, want %q", catalog.Title, DefaultCatalogTitle)
	}
	if target := catalog.Libraries[4].ResolvedTarget(); target != "sklearn" {
		t.Errorf("scikit-learn target = %q, want sklearn", target)
	}
}

func TestLoadCatalog_EmptyPathUsesDefault(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog.Libraries) != 7 {
		t.Errorf("expected 7 libraries, got %d", len(catalog.Libraries))
	}
}

func TestLoadCatalog_YAML(t *testing.T) {
	path := writeCatalog(t, "catalog.yaml", `
title: "media toolchain"
libraries:
  - name: pandas
  - name: ffmpeg
    kind: binary
  - name: cobra
    kind: GoModule
    target: github.com/spf13/cobra
  - name: pandas
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	if catalog.Title != "media toolchain" {
		t.Errorf("Title = %q, want media toolchain", catalog.Title)
	}
	if got := Names(catalog); !reflect.DeepEqual(got, []string{"pandas", "ffmpeg", "cobra", "pandas"}) {
		t.Errorf("Names() = %v, want order preserved with duplicates", got)
	}
	if catalog.Libraries[0].Kind != model.ProbeKindPython {
		t.Errorf("default kind = %q, want python", catalog.Libraries[0].Kind)
	}
	if catalog.Libraries[1].Kind != model.ProbeKindBinary {
		t.Errorf("kind = %q, want binary", catalog.Libraries[1].Kind)
	}
	if catalog.Libraries[2].Kind != model.ProbeKindGoModule {
		t.Errorf("kind = %q, want gomodule", catalog.Libraries[2].Kind)
	}
	if catalog.Libraries[2].ResolvedTarget() != "github.com/spf13/cobra" {
		t.Errorf("target = %q", catalog.Libraries[2].ResolvedTarget())
	}
}

func TestLoadCatalog_TOML(t *testing.T) {
	path := writeCatalog(t, "catalog.toml", `
title = "shared objects"

[[libraries]]
name = "ssl"
kind = "sharedlib"

[[libraries]]
name = "numpy"
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	if got := Names(catalog); !reflect.DeepEqual(got, []string{"ssl", "numpy"}) {
		t.Errorf("Names() = %v", got)
	}
	if catalog.Libraries[0].Kind != model.ProbeKindSharedLib {
		t.Errorf("kind = %q, want sharedlib", catalog.Libraries[0].Kind)
	}
	if catalog.Libraries[1].Kind != model.ProbeKindPython {
		t.Errorf("kind = %q, want python", catalog.Libraries[1].Kind)
	}
}

func TestLoadCatalog_DefaultTitle(t *testing.T) {
	path := writeCatalog(t, "catalog.yml", "libraries:\n  - name: numpy\n")

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if catalog.Title != "libraries" {
		t.Errorf("Title = %q, want libraries", catalog.Title)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"invalid yaml", "bad.yaml", "libraries: [invalid: yaml: content"},
		{"invalid toml", "bad.toml", "libraries = [[["},
		{"empty list", "empty.yaml", "libraries: []"},
		{"missing name", "noname.yaml", "libraries:\n  - kind: binary\n"},
		{"unsupported extension", "catalog.json", `{"libraries": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, tt.file, tt.content)
			if _, err := LoadCatalog(path); err == nil {
				t.Error("LoadCatalog() should return error")
			}
		})
	}
}

func TestLoadCatalog_FileNotFound(t *testing.T) {
	if _, err := LoadCatalog("/nonexistent/catalog.yaml"); err == nil {
		t.Error("LoadCatalog() should return error for nonexistent file")
	}
}
