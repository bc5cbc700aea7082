package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"env-inspector/internal/model"
)

// defaultLibraryDirs are searched after any configured directories and
// the loader's environment variable.
var defaultLibraryDirs = map[string][]string{
	"linux": {
		"/lib", "/lib64", "/usr/lib", "/usr/lib64", "/usr/local/lib",
		"/lib/x86_64-linux-gnu", "/usr/lib/x86_64-linux-gnu",
		"/lib/aarch64-linux-gnu", "/usr/lib/aarch64-linux-gnu",
	},
	"darwin": {"/usr/lib", "/usr/local/lib", "/opt/homebrew/lib"},
}

// loaderPathEnv is the dynamic loader's search path variable per OS.
var loaderPathEnv = map[string]string{
	"linux":   "LD_LIBRARY_PATH",
	"darwin":  "DYLD_LIBRARY_PATH",
	"windows": "PATH",
}

// SharedLibChecker resolves shared libraries by searching the same
// directories the dynamic loader would, without loading anything.
type SharedLibChecker struct {
	dirs   []string
	goos   string
	getenv func(string) string
}

// NewSharedLibChecker creates a SharedLibChecker. extraDirs are searched first.
func NewSharedLibChecker(extraDirs []string) *SharedLibChecker {
	return &SharedLibChecker{
		dirs:   extraDirs,
		goos:   runtime.GOOS,
		getenv: os.Getenv,
	}
}

// Check implements Checker. A bare name such as "ssl" matches
// libssl.so* on Linux, libssl*.dylib on macOS and ssl*.dll on Windows;
// a name that already carries an extension must match exactly.
func (c *SharedLibChecker) Check(_ context.Context, def *model.LibraryDefinition) error {
	target := def.ResolvedTarget()
	pattern := c.filePattern(target)

	// Only the file name is a pattern; directories are taken literally.
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("searching for %q: %w", target, err)
	}

	for _, dir := range c.searchDirs() {
		if containsMatch(dir, pattern) {
			return nil
		}
	}
	return notFound(model.ProbeKindSharedLib, target)
}

// containsMatch reports whether dir holds a file whose name matches
// pattern. Unreadable or missing directories hold nothing.
func containsMatch(dir, pattern string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			return true
		}
	}
	return false
}

// filePattern builds the glob for target on the checker's OS.
func (c *SharedLibChecker) filePattern(target string) string {
	lower := strings.ToLower(target)
	if strings.Contains(lower, ".so") || strings.HasSuffix(lower, ".dylib") || strings.HasSuffix(lower, ".dll") {
		return target
	}

	switch c.goos {
	case "windows":
		return target + "*.dll"
	case "darwin":
		return withLibPrefix(target) + "*.dylib"
	default:
		return withLibPrefix(target) + ".so*"
	}
}

// searchDirs returns configured, environment and default directories,
// de-duplicated and in that order.
func (c *SharedLibChecker) searchDirs() []string {
	var dirs []string
	dirs = append(dirs, c.dirs...)
	if name, ok := loaderPathEnv[c.goos]; ok {
		if value := c.getenv(name); value != "" {
			dirs = append(dirs, filepath.SplitList(value)...)
		}
	}
	dirs = append(dirs, defaultLibraryDirs[c.goos]...)

	seen := make(map[string]bool, len(dirs))
	result := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		result = append(result, d)
	}
	return result
}

func withLibPrefix(name string) string {
	if strings.HasPrefix(name, "lib") {
		return name
	}
	return "lib" + name
}
