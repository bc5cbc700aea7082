package html

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"env-inspector/internal/model"
)

func newTestReport() *model.Report {
	return &model.Report{
		RunID:       "3f2a7c1e-0000-4000-8000-000000000001",
		Version:     "v1.0.0",
		GeneratedAt: time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC),
		Duration:    1500 * time.Millisecond,
		Runtime: &model.RuntimeInfo{
			GoVersion:   "go1.25.5",
			Executable:  "/usr/local/bin/envcheck",
			WorkingDir:  "/srv/app",
			CurrentTime: time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC),
		},
		Environment: []*model.EnvVar{
			{Name: "DATABASE_URL", Value: "postgres:/...", Set: true, Truncated: true},
			{Name: "PGHOST", Value: model.NotFoundValue},
		},
		Platform: &model.PlatformInfo{OS: "linux", Arch: "amd64", Hostname: "build-01", NumCPU: 8},
		Libraries: &model.ScanResult{
			Title: "commonly used data science libraries",
			Results: []*model.ProbeResult{
				{Name: "pandas", Kind: model.ProbeKindPython, Target: "pandas", Installed: true},
				{Name: "<script>", Kind: model.ProbeKindPython, Target: "<script>"},
			},
		},
	}
}

func TestNewWriter(t *testing.T) {
	w := NewWriter(nil, "")
	if w == nil {
		t.Fatal("NewWriter returned nil")
	}
	if w.timezone != time.Local {
		t.Errorf("timezone = %v, want Local", w.timezone)
	}

	w = NewWriter(time.UTC, "/custom.html")
	if w.timezone != time.UTC || w.templatePath != "/custom.html" {
		t.Errorf("unexpected writer: %+v", w)
	}
}

func TestWriter_Format(t *testing.T) {
	if got := NewWriter(nil, "").Format(); got != "html" {
		t.Errorf("Format() = %v, want html", got)
	}
}

func TestWriter_Write_NilReport(t *testing.T) {
	if err := NewWriter(nil, "").Write(nil, "test.html"); err == nil {
		t.Error("Write() with nil report should return error")
	}
}

func TestWriter_Write_Success(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report")

	w := NewWriter(time.UTC, "")
	if err := w.Write(newTestReport(), outputPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(outputPath + ".html")
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"Environment Check Report",
		"3f2a7c1e-0000-4000-8000-000000000001",
		"postgres:/...",
		"commonly used data science libraries",
		"pandas",
		"status-installed",
		"Installed: 1",
		"Not installed: 1",
		"&lt;script&gt;",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(content, "Error checking libraries") {
		t.Error("output should not contain a fault without one")
	}
}

func TestWriter_Write_Fault(t *testing.T) {
	report := newTestReport()
	report.Libraries.Fault = "torch (python): exit status 1"
	report.Libraries.Skipped = []string{"seaborn", "tensorflow"}
	outputPath := filepath.Join(t.TempDir(), "fault.html")

	if err := NewWriter(time.UTC, "").Write(report, outputPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Error checking libraries: torch (python): exit status 1") {
		t.Error("output missing fault line")
	}
	if !strings.Contains(content, "Not checked: seaborn, tensorflow") {
		t.Error("output missing skipped libraries")
	}
}

func TestWriter_Write_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "custom.html")
	if err := os.WriteFile(tmplPath, []byte(`<p>{{.RunID}} {{len .Libraries}}</p>`), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	outputPath := filepath.Join(dir, "out.html")
	if err := NewWriter(time.UTC, tmplPath).Write(newTestReport(), outputPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, _ := os.ReadFile(outputPath)
	if got := string(data); got != "<p>3f2a7c1e-0000-4000-8000-000000000001 2</p>" {
		t.Errorf("custom template output = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1.5m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWriter_Write_FullDiskIsReported(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("/dev/full is linux only")
	}
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	outputPath := filepath.Join(t.TempDir(), "report.html")
	if err := os.Symlink("/dev/full", outputPath); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	if err := NewWriter(time.UTC, "").Write(newTestReport(), outputPath); err == nil {
		t.Error("Write() to a full device should return error")
	}
}
