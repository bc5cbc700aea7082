package probe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"env-inspector/internal/model"
)

// Checker resolves a single library definition.
//
// Check returns nil when the library is available, an error wrapping
// ErrNotFound when it is not, and any other error for failures that
// should abort the scan.
type Checker interface {
	Check(ctx context.Context, def *model.LibraryDefinition) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, def *model.LibraryDefinition) error

// Check calls f(ctx, def).
func (f CheckerFunc) Check(ctx context.Context, def *model.LibraryDefinition) error {
	return f(ctx, def)
}

// Registry maps a probe kind to its checker.
type Registry struct {
	checkers map[model.ProbeKind]Checker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		checkers: make(map[model.ProbeKind]Checker),
	}
}

// Options configures the checkers built by NewDefaultRegistry.
type Options struct {
	PythonInterpreters []string // Interpreter names tried in order, e.g. python3, python
	LibraryPaths       []string // Extra directories searched before the system defaults
}

// NewDefaultRegistry creates a registry with the python, gomodule, binary
// and sharedlib checkers registered.
func NewDefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register(model.ProbeKindPython, NewPythonChecker(opts.PythonInterpreters))
	r.Register(model.ProbeKindGoModule, NewGoModuleChecker())
	r.Register(model.ProbeKindBinary, NewBinaryChecker())
	r.Register(model.ProbeKindSharedLib, NewSharedLibChecker(opts.LibraryPaths))
	return r
}

// Register adds or replaces the checker for kind.
func (r *Registry) Register(kind model.ProbeKind, c Checker) {
	r.checkers[normalizeKind(kind)] = c
}

// Get returns the checker for kind. Kind names are case-insensitive.
func (r *Registry) Get(kind model.ProbeKind) (Checker, error) {
	c, ok := r.checkers[normalizeKind(kind)]
	if !ok {
		return nil, fmt.Errorf("unsupported probe kind %q, supported kinds: %s",
			kind, strings.Join(r.Kinds(), ", "))
	}
	return c, nil
}

// Has reports whether a checker is registered for kind.
func (r *Registry) Has(kind model.ProbeKind) bool {
	_, ok := r.checkers[normalizeKind(kind)]
	return ok
}

// Kinds returns all registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.checkers))
	for k := range r.checkers {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}

func normalizeKind(kind model.ProbeKind) model.ProbeKind {
	return model.ProbeKind(strings.ToLower(strings.TrimSpace(string(kind))))
}
