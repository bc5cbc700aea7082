package probe

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"

	"env-inspector/internal/model"
)

// GoModuleChecker resolves Go module paths against the dependencies
// recorded in the running binary's build info.
type GoModuleChecker struct {
	readBuildInfo func() (*debug.BuildInfo, bool)
}

// NewGoModuleChecker creates a GoModuleChecker for the running binary.
func NewGoModuleChecker() *GoModuleChecker {
	return &GoModuleChecker{readBuildInfo: debug.ReadBuildInfo}
}

// Check implements Checker. A target matches a module when it equals the
// module path or names a package inside it.
func (c *GoModuleChecker) Check(_ context.Context, def *model.LibraryDefinition) error {
	info, ok := c.readBuildInfo()
	if !ok || info == nil {
		return errors.New("build info is not available in this binary")
	}

	target := def.ResolvedTarget()
	if matchesModule(target, info.Main.Path) {
		return nil
	}
	for _, dep := range info.Deps {
		if matchesModule(target, dep.Path) {
			return nil
		}
		if dep.Replace != nil && matchesModule(target, dep.Replace.Path) {
			return nil
		}
	}
	return notFound(model.ProbeKindGoModule, target)
}

func matchesModule(target, modulePath string) bool {
	if modulePath == "" {
		return false
	}
	return target == modulePath || strings.HasPrefix(target, modulePath+"/")
}
