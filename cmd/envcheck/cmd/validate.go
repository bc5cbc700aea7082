package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"env-inspector/internal/config"
	"env-inspector/internal/model"
	"env-inspector/internal/probe"
	"env-inspector/internal/report"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and library catalog",
	Long: `Load and validate the configuration file and the library catalog.
Checks field values, that every catalog entry uses a registered probe kind
and that every report format is supported.`,
	Args: cobra.NoArgs,
	Run:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&catalogPath, "catalog", "", "library catalog file (.yaml, .yml or .toml)")
}

// runValidate executes the validate command logic.
func runValidate(cmd *cobra.Command, args []string) {
	configPath := GetConfigFile()

	// Load and validate configuration (Load internally calls Validate)
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}

	catalog, err := config.LoadCatalog(resolveCatalogPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog validation failed: %v\n", err)
		os.Exit(1)
	}

	if err := checkCatalogKinds(catalog, probe.NewDefaultRegistry(probe.Options{})); err != nil {
		fmt.Fprintf(os.Stderr, "catalog validation failed: %v\n", err)
		os.Exit(1)
	}

	if err := checkFormats(cfg.Report.Formats, report.NewRegistry(nil, cfg.Report.HTMLTemplate)); err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}

	if configPath == "" {
		configPath = "(built-in defaults)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %s\n", configPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Catalog %q: %d libraries (%s)\n",
		catalog.Title, len(catalog.Libraries), strings.Join(config.Names(catalog), ", "))
}

// checkCatalogKinds reports every catalog entry whose kind has no checker.
func checkCatalogKinds(catalog *model.LibraryCatalog, registry *probe.Registry) error {
	var problems []string
	for _, lib := range catalog.Libraries {
		if !registry.Has(lib.ResolvedKind()) {
			problems = append(problems, fmt.Sprintf("%s: unsupported probe kind %q", lib.Name, lib.Kind))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s (supported kinds: %s)",
			strings.Join(problems, "; "), strings.Join(registry.Kinds(), ", "))
	}
	return nil
}

// checkFormats reports the first unsupported report format.
func checkFormats(reportFormats []string, registry *report.Registry) error {
	for _, format := range reportFormats {
		if _, err := registry.Get(format); err != nil {
			return err
		}
	}
	return nil
}
