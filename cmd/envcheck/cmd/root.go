// Package cmd provides CLI commands for envcheck.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information, injected at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Global flags
var (
	cfgFile  string // Config file path
	logLevel string // Log level
)

// rootCmd runs the environment check when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "envcheck",
	Short: "Environment diagnostic - runtime, database variables, platform and libraries",
	Long: `envcheck prints a diagnostic of the current execution environment:

  - runtime information (Go version, executable, working directory, time)
  - database connection variables (DATABASE_URL, PGHOST, PGPORT, PGUSER, PGDATABASE)
  - platform information (OS, architecture, hostname, CPUs)
  - presence of commonly used data science libraries

The check needs no arguments and no configuration file. It exits 0 even
when the library scan fails part way; the failure is printed instead.

Examples:
  # Run the check with built-in defaults
  envcheck

  # Probe a custom candidate list and also write HTML and Excel reports
  envcheck --catalog libraries.yaml -f html,excel -o ./reports

  # Load extra variables from a dotenv file first
  envcheck --env-file .env`,
	Version: Version,
	Args:    cobra.NoArgs,
	Run:     runCheck,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// init initializes the root command and its flags.
func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (optional, defaults are built in)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	// Customize version template
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// GetConfigFile returns the config file path from command line flag.
func GetConfigFile() string {
	return cfgFile
}

// GetLogLevel returns the log level from command line flag.
func GetLogLevel() string {
	return logLevel
}

// GetVersionInfo returns formatted version information.
func GetVersionInfo() string {
	return Version + "\n" +
		"Build Time: " + BuildTime + "\n" +
		"Git Commit: " + GitCommit + "\n" +
		"Go Version: " + runtime.Version() + "\n" +
		"OS/Arch: " + runtime.GOOS + "/" + runtime.GOARCH
}
