// Package config provides configuration management for the environment inspector.
package config

import "time"

// Config is the root configuration structure for envcheck.
type Config struct {
	Probe       ProbeConfig       `mapstructure:"probe"`
	Environment EnvironmentConfig `mapstructure:"environment"`
	Report      ReportConfig      `mapstructure:"report"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ProbeConfig controls the library presence probe.
type ProbeConfig struct {
	// Catalog is a YAML or TOML candidate list file.
	// Empty selects the built-in data science list.
	Catalog string `mapstructure:"catalog"`
	// Python lists interpreter names tried in order for python probes.
	Python []string `mapstructure:"python" validate:"dive,required"`
	// LibraryPaths are searched before the system directories for sharedlib probes.
	LibraryPaths []string `mapstructure:"library_paths" validate:"dive,required"`
	// Timeout bounds each individual check. Zero disables it.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// EnvironmentConfig controls which environment variables are displayed.
type EnvironmentConfig struct {
	EnvFile        string   `mapstructure:"env_file"`                                          // Optional dotenv file
	Variables      []string `mapstructure:"variables" validate:"required,min=1,dive,required"` // Display order
	Locator        string   `mapstructure:"locator"`                                           // Shown truncated
	TruncateLength int      `mapstructure:"truncate_length" validate:"gte=1"`                  // Default: 10
}

// ReportConfig contains configurations for report export.
type ReportConfig struct {
	OutputDir        string   `mapstructure:"output_dir"`
	Formats          []string `mapstructure:"formats" validate:"dive,oneof=text html excel"`
	FilenameTemplate string   `mapstructure:"filename_template"`
	HTMLTemplate     string   `mapstructure:"html_template"`
	Timezone         string   `mapstructure:"timezone" validate:"timezone"`
}

// LoggingConfig contains configurations for logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}
