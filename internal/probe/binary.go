package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"env-inspector/internal/model"
)

// BinaryChecker resolves executables on PATH.
type BinaryChecker struct {
	lookPath func(string) (string, error)
}

// NewBinaryChecker creates a BinaryChecker using exec.LookPath.
func NewBinaryChecker() *BinaryChecker {
	return &BinaryChecker{lookPath: exec.LookPath}
}

// Check implements Checker.
func (c *BinaryChecker) Check(_ context.Context, def *model.LibraryDefinition) error {
	target := def.ResolvedTarget()
	_, err := c.lookPath(target)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return notFound(model.ProbeKindBinary, target)
	default:
		return fmt.Errorf("looking up %q: %w", target, err)
	}
}
