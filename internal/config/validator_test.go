// Package config provides configuration management for the environment inspector.
package config

import (
	"strings"
	"testing"
)

// newValidConfig creates a valid configuration for testing.
func newValidConfig() *Config {
	return &Config{
		Probe: ProbeConfig{
			Python: []string{"python3", "python"},
		},
		Environment: EnvironmentConfig{
			Variables:      []string{"DATABASE_URL", "PGHOST", "PGPORT", "PGUSER", "PGDATABASE"},
			Locator:        "DATABASE_URL",
			TruncateLength: 10,
		},
		Report: ReportConfig{
			OutputDir:        "./reports",
			Formats:          []string{"excel", "html"},
			FilenameTemplate: "envcheck_report_{{.Date}}",
			Timezone:         "UTC",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := newValidConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Validate() error = %v, want nil for valid config", err)
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "unknown report format",
			mutate:    func(c *Config) { c.Report.Formats = []string{"pdf"} },
			wantField: "report.formats[0]",
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "verbose" },
			wantField: "logging.level",
		},
		{
			name:      "invalid log format",
			mutate:    func(c *Config) { c.Logging.Format = "xml" },
			wantField: "logging.format",
		},
		{
			name:      "zero truncate length",
			mutate:    func(c *Config) { c.Environment.TruncateLength = 0 },
			wantField: "environment.truncate_length",
		},
		{
			name:      "no variables",
			mutate:    func(c *Config) { c.Environment.Variables = nil },
			wantField: "environment.variables",
		},
		{
			name:      "invalid timezone",
			mutate:    func(c *Config) { c.Report.Timezone = "Mars/Olympus_Mons" },
			wantField: "report.timezone",
		},
		{
			name:      "negative timeout",
			mutate:    func(c *Config) { c.Probe.Timeout = -1 },
			wantField: "probe.timeout",
		},
		{
			name:      "locator not listed",
			mutate:    func(c *Config) { c.Environment.Locator = "REDIS_URL" },
			wantField: "environment.locator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newValidConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() should return error")
			}

			validationErrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}

			found := false
			for _, ve := range validationErrs {
				if ve.Field == tt.wantField {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got: %v", tt.wantField, err)
			}
		})
	}
}

func TestValidate_EmptyLocatorAllowed(t *testing.T) {
	cfg := newValidConfig()
	cfg.Environment.Locator = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "logging.level", Message: "value must be one of: debug info warn error"},
		{Field: "report.timezone", Message: "invalid timezone: Mars"},
	}

	msg := errs.Error()
	if !strings.HasPrefix(msg, "config validation failed:") {
		t.Errorf("unexpected prefix: %q", msg)
	}
	if !strings.Contains(msg, "  - logging.level: value must be one of") {
		t.Errorf("missing logging.level line: %q", msg)
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should have empty message")
	}
}

func TestFormatFieldName(t *testing.T) {
	tests := map[string]string{
		"Config.Environment.TruncateLength": "environment.truncate_length",
		"Config.Probe.LibraryPaths[1]":      "probe.library_paths[1]",
		"Config.Logging.Level":              "logging.level",
		"Level":                             "level",
	}

	for in, want := range tests {
		if got := formatFieldName(in); got != want {
			t.Errorf("formatFieldName(%q) = %q, want %q", in, got, want)
		}
	}
}
