// Package service provides business logic services for the environment inspector.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"env-inspector/internal/model"
	"env-inspector/internal/probe"
)

// Inspector orchestrates one envcheck run: the collector sections
// followed by the library scan.
type Inspector struct {
	collector *Collector
	prober    *probe.Prober
	catalog   *model.LibraryCatalog
	timezone  *time.Location
	version   string
	logger    zerolog.Logger
}

// InspectorOption is a functional option for configuring an Inspector.
type InspectorOption func(*Inspector)

// NewInspector creates a new Inspector with the given dependencies.
func NewInspector(
	collector *Collector,
	prober *probe.Prober,
	catalog *model.LibraryCatalog,
	logger zerolog.Logger,
	opts ...InspectorOption,
) *Inspector {
	i := &Inspector{
		collector: collector,
		prober:    prober,
		catalog:   catalog,
		timezone:  time.Local,
		version:   "dev",
		logger:    logger.With().Str("component", "inspector").Logger(),
	}

	// Apply options
	for _, opt := range opts {
		opt(i)
	}

	return i
}

// WithVersion sets the tool version to include in the report.
func WithVersion(version string) InspectorOption {
	return func(i *Inspector) {
		i.version = version
	}
}

// WithReportTimezone sets the timezone for report timestamps.
func WithReportTimezone(loc *time.Location) InspectorOption {
	return func(i *Inspector) {
		if loc != nil {
			i.timezone = loc
		}
	}
}

// Run executes a complete check. A scan-level fault does not fail the
// run: it is recorded in the report's library section and logged.
func (i *Inspector) Run(ctx context.Context) *model.Report {
	startTime := time.Now().In(i.timezone)
	report := &model.Report{
		RunID:       uuid.NewString(),
		Version:     i.version,
		GeneratedAt: startTime,
	}

	logger := i.logger.With().Str("run_id", report.RunID).Logger()
	logger.Info().
		Time("start_time", startTime).
		Int("candidates", len(i.catalog.Libraries)).
		Msg("starting environment check")

	// Step 1: Runtime, environment and platform sections
	if err := i.collector.LoadEnvFile(); err != nil {
		logger.Warn().Err(err).Msg("env file not loaded, continuing with process environment")
	}
	report.Runtime = i.collector.CollectRuntime()
	report.Environment = i.collector.CollectEnvironment()
	report.Platform = i.collector.CollectPlatform()

	// Step 2: Library scan
	scan, err := i.prober.Scan(ctx, i.catalog.Title, i.catalog.Libraries)
	report.Libraries = scan
	if err != nil {
		var fault *probe.Fault
		if errors.As(err, &fault) {
			logger.Error().
				Err(fault.Err).
				Str("library", fault.Library).
				Str("kind", string(fault.Kind)).
				Msg("library scan aborted")
		} else {
			logger.Error().Err(err).Msg("library scan aborted")
		}
	}

	report.Duration = time.Since(startTime)
	logger.Info().
		Int("installed", scan.InstalledCount()).
		Int("missing", scan.MissingCount()).
		Bool("faulted", scan.Faulted()).
		Dur("duration", report.Duration).
		Msg("environment check completed")

	return report
}
