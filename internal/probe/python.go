package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"env-inspector/internal/model"
)

// pythonImportScript imports sys.argv[1] and exits with
// pythonNotFoundExit only when the import raises ImportError. Any other
// exception escapes and yields the interpreter's generic failure status.
const pythonImportScript = `import importlib, sys
try:
    importlib.import_module(sys.argv[1])
except ImportError:
    sys.exit(3)
`

const pythonNotFoundExit = 3

// DefaultPythonInterpreters are tried in order when none are configured.
var DefaultPythonInterpreters = []string{"python3", "python"}

// commandRunner runs an external command and returns its combined output.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// PythonChecker resolves libraries by importing them in a Python interpreter.
type PythonChecker struct {
	interpreters []string
	lookPath     func(string) (string, error)
	run          commandRunner
}

// NewPythonChecker creates a PythonChecker. An empty list selects
// DefaultPythonInterpreters.
func NewPythonChecker(interpreters []string) *PythonChecker {
	if len(interpreters) == 0 {
		interpreters = DefaultPythonInterpreters
	}
	return &PythonChecker{
		interpreters: interpreters,
		lookPath:     exec.LookPath,
		run:          runCommand,
	}
}

// Interpreter returns the path of the first interpreter found on PATH.
func (c *PythonChecker) Interpreter() (string, error) {
	for _, name := range c.interpreters {
		if path, err := c.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no python interpreter found (tried %s)", strings.Join(c.interpreters, ", "))
}

// Check implements Checker.
func (c *PythonChecker) Check(ctx context.Context, def *model.LibraryDefinition) error {
	interpreter, err := c.Interpreter()
	if err != nil {
		return err
	}

	target := def.ResolvedTarget()
	out, err := c.run(ctx, interpreter, "-c", pythonImportScript, target)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("importing %q: %w", target, ctxErr)
	}

	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) && exitErr.ExitCode() == pythonNotFoundExit {
		return notFound(model.ProbeKindPython, target)
	}

	if line := lastLine(out); line != "" {
		return fmt.Errorf("importing %q: %w: %s", target, err, line)
	}
	return fmt.Errorf("importing %q: %w", target, err)
}

// lastLine returns the last non-empty line of out, which for a Python
// traceback is the exception message.
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
