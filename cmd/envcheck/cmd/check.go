package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"env-inspector/internal/config"
	"env-inspector/internal/model"
	"env-inspector/internal/probe"
	"env-inspector/internal/report"
	"env-inspector/internal/report/text"
	"env-inspector/internal/service"
)

// Command flags
var (
	catalogPath string   // Candidate list file (YAML or TOML)
	envFile     string   // Optional dotenv file
	formats     []string // Report file formats (text, html, excel)
	outputDir   string   // Output directory for report files
)

func init() {
	rootCmd.Flags().StringVar(&catalogPath, "catalog", "", "library catalog file (.yaml, .yml or .toml)")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file loaded before reading variables")
	rootCmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "also write report files (text,html,excel), comma separated")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for report files")
}

// runCheck executes the environment check and prints the report to stdout.
// Only configuration and catalog errors end the process with status 1.
func runCheck(cmd *cobra.Command, args []string) {
	cfg, logger := loadConfigAndLogger(cmd)

	timezone := loadTimezone(cfg.Report.Timezone)

	catalog, err := config.LoadCatalog(resolveCatalogPath(cfg))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load library catalog")
		fmt.Fprintf(os.Stderr, "failed to load library catalog: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().
		Str("title", catalog.Title).
		Strs("libraries", config.Names(catalog)).
		Msg("library catalog loaded")

	if envFile != "" {
		cfg.Environment.EnvFile = envFile
	}

	registry := probe.NewDefaultRegistry(probe.Options{
		PythonInterpreters: cfg.Probe.Python,
		LibraryPaths:       cfg.Probe.LibraryPaths,
	})
	prober := probe.NewProber(registry, logger, probe.WithTimeout(cfg.Probe.Timeout))
	collector := service.NewCollector(cfg.Environment, logger,
		service.WithToolVersion(Version),
		service.WithTimezone(timezone),
	)
	inspector := service.NewInspector(collector, prober, catalog, logger,
		service.WithVersion(Version),
		service.WithReportTimezone(timezone),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rep := inspector.Run(ctx)

	if err := text.NewWriter().Render(cmd.OutOrStdout(), rep); err != nil {
		logger.Error().Err(err).Msg("failed to print report")
	}

	exportReports(ctx, cfg, rep, timezone, logger)
}

// loadConfig loads the configuration. Without an explicit config file, an
// invalid ENVCHECK_ override falls back to the built-in defaults and is
// returned as warning; only an explicit file can fail the load.
func loadConfig(configPath string) (cfg *config.Config, warning error, err error) {
	cfg, err = config.Load(configPath)
	if err == nil {
		return cfg, nil, nil
	}
	if configPath != "" {
		return nil, nil, err
	}
	return config.Default(), err, nil
}

// loadConfigAndLogger loads the configuration and builds the logger.
// An explicit config file that fails to load ends the process with status 1.
func loadConfigAndLogger(cmd *cobra.Command) (*config.Config, zerolog.Logger) {
	configPath := GetConfigFile()
	cfg, warning, err := loadConfig(configPath)
	if err != nil {
		// Use temporary console logger for config loading errors
		tmpLogger := setupLogger(os.Stderr, "error", "console", time.Local)
		tmpLogger.Error().Err(err).Str("path", configPath).Msg("failed to load config")
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Command line --log-level overrides config file setting
	level := cfg.Logging.Level
	if f := cmd.Flag("log-level"); f != nil && f.Changed {
		level = GetLogLevel()
	}
	logger := setupLogger(os.Stderr, level, cfg.Logging.Format, loadTimezone(cfg.Report.Timezone))
	if warning != nil {
		logger.Warn().Err(warning).Msg("invalid environment overrides ignored, using built-in defaults")
		fmt.Fprintf(os.Stderr, "ignoring invalid configuration, using defaults: %v\n", warning)
	}
	logger.Debug().
		Str("config_path", configPath).
		Str("log_level", level).
		Str("log_format", cfg.Logging.Format).
		Msg("configuration loaded successfully")

	return cfg, logger
}

// exportReports writes the requested report files. Failures are logged and
// printed to stderr; they never change the exit status.
func exportReports(ctx context.Context, cfg *config.Config, rep *model.Report, timezone *time.Location, logger zerolog.Logger) {
	reportFormats := resolveFormats(cfg)
	if len(reportFormats) == 0 {
		return
	}

	dir := resolveOutputDir(cfg)
	registry := report.NewRegistry(timezone, cfg.Report.HTMLTemplate)
	results, err := registry.Export(ctx, rep, reportFormats, dir, generateFilename(cfg.Report.FilenameTemplate, timezone))
	if err != nil {
		logger.Error().Err(err).Str("output_dir", dir).Msg("failed to export reports")
		fmt.Fprintf(os.Stderr, "failed to export reports: %v\n", err)
		return
	}

	for _, r := range results {
		logger.Info().Str("format", r.Format).Str("path", r.Path).Msg("report written")
		fmt.Fprintf(os.Stderr, "Report written: %s\n", r.Path)
	}
}

// setupLogger creates a zerolog logger with the specified level and format.
func setupLogger(out io.Writer, level string, format string, tz *time.Location) zerolog.Logger {
	// Set log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if tz == nil {
		tz = time.Local
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(tz)
	}

	// Select output format based on configuration
	var output io.Writer
	if format == "json" {
		output = out
	} else {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// loadTimezone resolves the configured timezone, falling back to local time.
func loadTimezone(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	tz, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return tz
}

// resolveCatalogPath determines the catalog file to use.
// Command line flags take precedence over config file.
func resolveCatalogPath(cfg *config.Config) string {
	if catalogPath != "" {
		return catalogPath
	}
	return cfg.Probe.Catalog
}

// resolveFormats determines the report file formats to write.
// Command line flags take precedence over config file. No formats means
// stdout only.
func resolveFormats(cfg *config.Config) []string {
	if len(formats) > 0 {
		return formats
	}
	return cfg.Report.Formats
}

// resolveOutputDir determines the output directory to use.
// Command line flags take precedence over config file.
func resolveOutputDir(cfg *config.Config) string {
	if outputDir != "" {
		return outputDir
	}
	if cfg.Report.OutputDir != "" {
		return cfg.Report.OutputDir
	}
	return "./reports" // default
}

// generateFilename creates a filename from the template.
// Supported placeholder: {{.Date}}
func generateFilename(template string, tz *time.Location) string {
	if template == "" {
		template = "envcheck_report_{{.Date}}"
	}

	// Get current date in the configured timezone
	dateStr := time.Now().In(tz).Format("2006-01-02")

	// Replace placeholders
	filename := strings.ReplaceAll(template, "{{.Date}}", dateStr)
	filename = strings.ReplaceAll(filename, "{{ .Date }}", dateStr)

	return filename
}
