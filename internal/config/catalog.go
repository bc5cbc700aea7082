// Package config provides configuration management for the environment inspector.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"env-inspector/internal/model"
)

// DefaultCatalogTitle describes the built-in candidate list.
const DefaultCatalogTitle = "commonly used data science libraries"

// DefaultCatalog returns the built-in candidate list, in probe order.
func DefaultCatalog() *model.LibraryCatalog {
	return &model.LibraryCatalog{
		Title: DefaultCatalogTitle,
		Libraries: []*model.LibraryDefinition{
			{Name: "pandas", Kind: model.ProbeKindPython},
			{Name: "numpy", Kind: model.ProbeKindPython},
			{Name: "matplotlib", Kind: model.ProbeKindPython},
			{Name: "seaborn", Kind: model.ProbeKindPython},
			{Name: "scikit-learn", Kind: model.ProbeKindPython, Target: "sklearn"},
			{Name: "tensorflow", Kind: model.ProbeKindPython},
			{Name: "torch", Kind: model.ProbeKindPython},
		},
	}
}

// LoadCatalog reads a candidate list from a YAML (.yaml, .yml) or TOML
// (.toml) file. An empty path returns DefaultCatalog.
//
// Entries without a kind default to python. Order is preserved and
// duplicate names are allowed.
func LoadCatalog(catalogPath string) (*model.LibraryCatalog, error) {
	if catalogPath == "" {
		return DefaultCatalog(), nil
	}

	// Check if file exists
	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog file not found: %s", catalogPath)
	}

	// Read file content
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog model.LibraryCatalog
	switch ext := strings.ToLower(filepath.Ext(catalogPath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse catalog file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse catalog file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q, use .yaml, .yml or .toml", ext)
	}

	if len(catalog.Libraries) == 0 {
		return nil, fmt.Errorf("no libraries defined in catalog file: %s", catalogPath)
	}

	// Validate each definition and fill defaults
	for i, lib := range catalog.Libraries {
		if lib == nil || strings.TrimSpace(lib.Name) == "" {
			return nil, fmt.Errorf("library at index %d has no name", i)
		}
		lib.Name = strings.TrimSpace(lib.Name)
		lib.Kind = lib.ResolvedKind()
	}

	if catalog.Title == "" {
		catalog.Title = "libraries"
	}

	return &catalog, nil
}

// Names returns the library names of the catalog in order.
func Names(catalog *model.LibraryCatalog) []string {
	names := make([]string, 0, len(catalog.Libraries))
	for _, lib := range catalog.Libraries {
		names = append(names, lib.Name)
	}
	return names
}
