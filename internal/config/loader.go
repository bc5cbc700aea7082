// Package config provides configuration management for the environment inspector.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultVariables are the connection variables displayed when none are configured.
var DefaultVariables = []string{"DATABASE_URL", "PGHOST", "PGPORT", "PGUSER", "PGDATABASE"}

// Load reads configuration from the optional YAML file and environment variables.
// Environment variables take precedence over file values.
// Environment variable format: ENVCHECK_<SECTION>_<KEY> (e.g., ENVCHECK_LOGGING_LEVEL)
//
// An empty configPath yields the defaults, so envcheck runs without any file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults first
	setDefaults(v)

	// Configure environment variable binding
	v.SetEnvPrefix("ENVCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration, ignoring files and
// environment overrides.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: built-in defaults do not unmarshal: %v", err))
	}
	return &cfg
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	// Probe defaults
	v.SetDefault("probe.catalog", "")
	v.SetDefault("probe.python", []string{"python3", "python"})
	v.SetDefault("probe.library_paths", []string{})
	v.SetDefault("probe.timeout", time.Duration(0))

	// Environment defaults
	v.SetDefault("environment.env_file", "")
	v.SetDefault("environment.variables", DefaultVariables)
	v.SetDefault("environment.locator", "DATABASE_URL")
	v.SetDefault("environment.truncate_length", 10)

	// Report defaults
	v.SetDefault("report.output_dir", "./reports")
	v.SetDefault("report.formats", []string{})
	v.SetDefault("report.filename_template", "envcheck_report_{{.Date}}")
	v.SetDefault("report.timezone", "Local")

	// Logging defaults
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
}
