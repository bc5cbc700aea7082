// Package html provides HTML report generation for envcheck.
// It implements the report.ReportWriter interface to generate .html files
// with the runtime, environment, platform and library sections.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"env-inspector/internal/model"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Writer implements report.ReportWriter for HTML format.
type Writer struct {
	timezone     *time.Location
	templatePath string // User-defined template path (optional)
}

// TemplateData holds all data passed to the HTML template.
type TemplateData struct {
	Title        string
	RunID        string
	Version      string
	GeneratedAt  string
	Duration     string
	Runtime      *model.RuntimeInfo
	Environment  []*model.EnvVar
	Platform     *model.PlatformInfo
	LibraryTitle string
	Libraries    []*LibraryData
	Installed    int
	Missing      int
	Fault        string
	Skipped      []string
}

// LibraryData represents one probe result formatted for template rendering.
type LibraryData struct {
	Name        string
	Kind        string
	Target      string
	Status      string
	StatusClass string
	Duration    string
}

// NewWriter creates a new HTML report writer.
// If timezone is nil, it defaults to local time.
// If templatePath is empty, the embedded default template will be used.
func NewWriter(timezone *time.Location, templatePath string) *Writer {
	if timezone == nil {
		timezone = time.Local
	}
	return &Writer{
		timezone:     timezone,
		templatePath: templatePath,
	}
}

// Format returns the format identifier for this writer.
func (w *Writer) Format() string {
	return "html"
}

// Write generates an HTML report.
func (w *Writer) Write(report *model.Report, outputPath string) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	// Ensure output path has .html extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath = outputPath + ".html"
	}

	// Load template
	tmpl, err := w.loadTemplate()
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	// Prepare template data
	data := w.prepareTemplateData(report)

	// Create output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Execute template
	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// loadTemplate loads the HTML template.
// It first tries to load a user-defined template, then falls back to the embedded default.
func (w *Writer) loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	// Try user-defined template first
	if w.templatePath != "" {
		if _, err := os.Stat(w.templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(w.templatePath)).Funcs(funcMap).ParseFiles(w.templatePath)
			if err != nil {
				return nil, fmt.Errorf("failed to parse user template: %w", err)
			}
			return tmpl, nil
		}
		// User template not found, fall through to default
	}

	// Load embedded default template
	tmpl, err := template.New("report.html").Funcs(funcMap).ParseFS(embeddedTemplates, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// prepareTemplateData converts a Report to TemplateData for template rendering.
func (w *Writer) prepareTemplateData(report *model.Report) *TemplateData {
	data := &TemplateData{
		Title:       "Environment Check Report",
		RunID:       report.RunID,
		Version:     report.Version,
		GeneratedAt: report.GeneratedAt.In(w.timezone).Format(model.TimeLayout),
		Duration:    formatDuration(report.Duration),
		Runtime:     report.Runtime,
		Environment: report.Environment,
		Platform:    report.Platform,
	}

	if scan := report.Libraries; scan != nil {
		data.LibraryTitle = scan.Title
		data.Installed = scan.InstalledCount()
		data.Missing = scan.MissingCount()
		data.Fault = scan.Fault
		data.Skipped = scan.Skipped
		data.Libraries = make([]*LibraryData, 0, len(scan.Results))
		for _, r := range scan.Results {
			data.Libraries = append(data.Libraries, convertLibraryData(r))
		}
	}

	return data
}

// convertLibraryData converts a ProbeResult to LibraryData for template rendering.
func convertLibraryData(r *model.ProbeResult) *LibraryData {
	return &LibraryData{
		Name:        r.Name,
		Kind:        string(r.Kind),
		Target:      r.Target,
		Status:      r.StatusText(),
		StatusClass: statusClass(r.Installed),
		Duration:    formatDuration(r.Duration),
	}
}

// formatDuration formats a duration in a human-readable format.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}

// statusClass returns the CSS class for an availability.
func statusClass(installed bool) string {
	if installed {
		return "status-installed"
	}
	return "status-missing"
}
