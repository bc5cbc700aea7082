//go:build ignore
// +build ignore

// This script generates sample reports in every format for manual verification.
// Run with: go run scripts/verify_report.go
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"env-inspector/internal/model"
	"env-inspector/internal/report"
)

func main() {
	// Create test data
	sample := createSampleData()

	tz := time.Local
	registry := report.NewRegistry(tz, "")

	results, err := registry.Export(context.Background(), sample, registry.GetAll(), ".", "sample_envcheck_report")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating reports: %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		fmt.Printf("%-6s %s\n", r.Format, r.Path)
	}
	fmt.Println("Sample reports generated. Inspect sample_envcheck_report.xlsx with scripts/read_excel.go")
}

func createSampleData() *model.Report {
	now := time.Now()
	return &model.Report{
		RunID:       "00000000-0000-0000-0000-000000000001",
		Version:     "dev",
		GeneratedAt: now,
		Duration:    1850 * time.Millisecond,
		Runtime: &model.RuntimeInfo{
			ToolVersion: "dev",
			GoVersion:   runtime.Version(),
			Executable:  "/usr/local/bin/envcheck",
			WorkingDir:  "/srv/app",
			CurrentTime: now,
		},
		Environment: []*model.EnvVar{
			{Name: "DATABASE_URL", Value: "postgresql...", Set: true, Truncated: true},
			{Name: "PGHOST", Value: "db.internal", Set: true},
			{Name: "PGPORT", Value: "5432", Set: true},
			{Name: "PGUSER", Value: model.NotFoundValue},
			{Name: "PGDATABASE", Value: model.NotFoundValue},
		},
		Platform: &model.PlatformInfo{
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			Hostname: "sample-host",
			NumCPU:   8,
		},
		Libraries: &model.ScanResult{
			Title: "commonly used data science libraries",
			Results: []*model.ProbeResult{
				{Name: "pandas", Kind: model.ProbeKindPython, Target: "pandas", Installed: true, Duration: 420 * time.Millisecond},
				{Name: "numpy", Kind: model.ProbeKindPython, Target: "numpy", Installed: true, Duration: 130 * time.Millisecond},
				{Name: "matplotlib", Kind: model.ProbeKindPython, Target: "matplotlib", Duration: 40 * time.Millisecond},
				{Name: "seaborn", Kind: model.ProbeKindPython, Target: "seaborn", Duration: 38 * time.Millisecond},
			},
			Fault:   "scikit-learn (python): exit status 1: RuntimeError: broken build",
			Skipped: []string{"scikit-learn", "tensorflow", "torch"},
		},
	}
}
