// Package service provides business logic services for the environment inspector.
package service

import (
	"fmt"
	"os"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"env-inspector/internal/config"
	"env-inspector/internal/model"
)

// truncationSuffix is appended to a truncated locator.
const truncationSuffix = "..."

// Collector gathers the runtime, environment and platform sections.
// Environment values are read for display only.
type Collector struct {
	config   config.EnvironmentConfig
	version  string
	timezone *time.Location
	logger   zerolog.Logger

	lookupEnv  func(string) (string, bool)
	now        func() time.Time
	executable func() (string, error)
	getwd      func() (string, error)
	hostname   func() (string, error)
}

// CollectorOption is a functional option for configuring a Collector.
type CollectorOption func(*Collector)

// WithToolVersion sets the tool version reported in the runtime section.
func WithToolVersion(version string) CollectorOption {
	return func(c *Collector) {
		c.version = version
	}
}

// WithTimezone sets the timezone used for the current time.
func WithTimezone(loc *time.Location) CollectorOption {
	return func(c *Collector) {
		if loc != nil {
			c.timezone = loc
		}
	}
}

// WithLookupEnv replaces os.LookupEnv as the environment source.
func WithLookupEnv(lookup func(string) (string, bool)) CollectorOption {
	return func(c *Collector) {
		c.lookupEnv = lookup
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CollectorOption {
	return func(c *Collector) {
		c.now = now
	}
}

// NewCollector creates a new Collector instance.
func NewCollector(envCfg config.EnvironmentConfig, logger zerolog.Logger, opts ...CollectorOption) *Collector {
	c := &Collector{
		config:     envCfg,
		version:    "dev",
		timezone:   time.Local,
		logger:     logger.With().Str("component", "collector").Logger(),
		lookupEnv:  os.LookupEnv,
		now:        time.Now,
		executable: os.Executable,
		getwd:      os.Getwd,
		hostname:   os.Hostname,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LoadEnvFile loads the configured dotenv file into the process
// environment. Variables that are already set keep their values.
// It is a no-op when no file is configured.
func (c *Collector) LoadEnvFile() error {
	if c.config.EnvFile == "" {
		return nil
	}
	if err := godotenv.Load(c.config.EnvFile); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", c.config.EnvFile, err)
	}
	c.logger.Debug().Str("env_file", c.config.EnvFile).Msg("env file loaded")
	return nil
}

// CollectRuntime describes the running binary.
func (c *Collector) CollectRuntime() *model.RuntimeInfo {
	info := &model.RuntimeInfo{
		ToolVersion: c.version,
		GoVersion:   runtime.Version(),
		CurrentTime: c.now().In(c.timezone),
	}

	if exe, err := c.executable(); err == nil {
		info.Executable = exe
	} else {
		c.logger.Warn().Err(err).Msg("failed to resolve executable path")
		info.Executable = "unknown"
	}

	if wd, err := c.getwd(); err == nil {
		info.WorkingDir = wd
	} else {
		c.logger.Warn().Err(err).Msg("failed to resolve working directory")
		info.WorkingDir = "unknown"
	}

	return info
}

// CollectEnvironment reads the configured variables in order. Unset
// variables display as model.NotFoundValue; the locator variable is
// truncated to the configured length.
func (c *Collector) CollectEnvironment() []*model.EnvVar {
	vars := make([]*model.EnvVar, 0, len(c.config.Variables))
	for _, name := range c.config.Variables {
		value, ok := c.lookupEnv(name)
		if !ok {
			value = model.NotFoundValue
		}

		ev := &model.EnvVar{Name: name, Value: value, Set: ok}
		if name == c.config.Locator {
			ev.Value, ev.Truncated = TruncateLocator(value, c.config.TruncateLength)
		}
		vars = append(vars, ev)
	}

	c.logger.Debug().Int("variables", len(vars)).Msg("environment collected")
	return vars
}

// CollectPlatform describes the host platform.
func (c *Collector) CollectPlatform() *model.PlatformInfo {
	info := &model.PlatformInfo{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
	}

	if host, err := c.hostname(); err == nil {
		info.Hostname = host
	} else {
		c.logger.Warn().Err(err).Msg("failed to resolve hostname")
		info.Hostname = "unknown"
	}

	return info
}

// TruncateLocator shortens value to its first n characters followed by
// "..." when it is longer than n characters, and returns it unchanged
// otherwise. Characters are counted as runes. The boolean reports
// whether truncation happened.
func TruncateLocator(value string, n int) (string, bool) {
	if n <= 0 || utf8.RuneCountInString(value) <= n {
		return value, false
	}

	runes := []rune(value)
	return string(runes[:n]) + truncationSuffix, true
}
