// Package model provides data models for the environment inspector.
package model

import (
	"strings"
	"time"
)

// ProbeKind names the checker used to resolve a library.
type ProbeKind string

const (
	ProbeKindPython    ProbeKind = "python"    // Python import
	ProbeKindGoModule  ProbeKind = "gomodule"  // Go module linked into this binary
	ProbeKindBinary    ProbeKind = "binary"    // executable on PATH
	ProbeKindSharedLib ProbeKind = "sharedlib" // shared object in the library search path
)

// DefaultProbeKind is used when a catalog entry does not name a kind.
const DefaultProbeKind = ProbeKindPython

// LibraryDefinition describes one entry of the candidate list.
type LibraryDefinition struct {
	Name   string    `yaml:"name" toml:"name" json:"name"`       // Display name
	Kind   ProbeKind `yaml:"kind" toml:"kind" json:"kind"`       // Checker kind, defaults to python
	Target string    `yaml:"target" toml:"target" json:"target"` // What the checker resolves, defaults to Name
}

// ResolvedTarget returns Target, falling back to Name.
func (d *LibraryDefinition) ResolvedTarget() string {
	if t := strings.TrimSpace(d.Target); t != "" {
		return t
	}
	return d.Name
}

// ResolvedKind returns Kind, falling back to DefaultProbeKind.
func (d *LibraryDefinition) ResolvedKind() ProbeKind {
	if d.Kind == "" {
		return DefaultProbeKind
	}
	return ProbeKind(strings.ToLower(string(d.Kind)))
}

// LibraryCatalog is the on-disk layout of a candidate list file.
type LibraryCatalog struct {
	Title     string               `yaml:"title" toml:"title"`
	Libraries []*LibraryDefinition `yaml:"libraries" toml:"libraries"`
}

// ProbeResult pairs a library name with its availability.
type ProbeResult struct {
	Name      string        `json:"name"`
	Kind      ProbeKind     `json:"kind"`
	Target    string        `json:"target"`
	Installed bool          `json:"installed"`
	Duration  time.Duration `json:"duration"`
}

// StatusText returns the human-readable availability, "installed" or "not installed".
func (r *ProbeResult) StatusText() string {
	if r.Installed {
		return "installed"
	}
	return "not installed"
}

// ScanResult is the outcome of one pass over the candidate list.
// Results follow the candidate order. When Fault is set the scan stopped
// early and Skipped lists the names that were never attempted.
type ScanResult struct {
	Title   string         `json:"title"`
	Results []*ProbeResult `json:"results"`
	Fault   string         `json:"fault,omitempty"`
	Skipped []string       `json:"skipped,omitempty"`
}

// NewScanResult creates an empty ScanResult with capacity for n results.
func NewScanResult(title string, n int) *ScanResult {
	return &ScanResult{
		Title:   title,
		Results: make([]*ProbeResult, 0, n),
	}
}

// Faulted reports whether the scan was aborted by a scan-level fault.
func (s *ScanResult) Faulted() bool {
	return s.Fault != ""
}

// InstalledCount returns the number of results marked installed.
func (s *ScanResult) InstalledCount() int {
	count := 0
	for _, r := range s.Results {
		if r.Installed {
			count++
		}
	}
	return count
}

// MissingCount returns the number of results marked not installed.
func (s *ScanResult) MissingCount() int {
	return len(s.Results) - s.InstalledCount()
}
