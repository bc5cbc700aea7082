// Package probe implements the library presence prober.
//
// A scan walks an ordered candidate list and asks a registered Checker
// whether each library resolves. Errors come in two kinds: ErrNotFound
// is recovered locally and becomes a "not installed" result, while any
// other failure becomes a *Fault that ends the scan.
package probe

import (
	"errors"
	"fmt"

	"env-inspector/internal/model"
)

// ErrNotFound is wrapped by checkers when a library cannot be resolved.
var ErrNotFound = errors.New("library not found")

// notFound wraps ErrNotFound with the target that was looked up.
func notFound(kind model.ProbeKind, target string) error {
	return fmt.Errorf("%s %q: %w", kind, target, ErrNotFound)
}

// IsNotFound reports whether err marks an unresolvable library.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Fault is a scan-level failure. It is not attributable to a library
// being absent, so the remainder of the scan is abandoned.
type Fault struct {
	Library string
	Kind    model.ProbeKind
	Err     error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Library == "" {
		return f.Err.Error()
	}
	return fmt.Sprintf("%s (%s): %v", f.Library, f.Kind, f.Err)
}

// Unwrap returns the underlying cause.
func (f *Fault) Unwrap() error {
	return f.Err
}
