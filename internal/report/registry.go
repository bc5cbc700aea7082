// Package report provides report generation for envcheck results.
// It defines the ReportWriter interface and provides a registry for managing
// different report formats (text, HTML, Excel).
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"env-inspector/internal/model"
	"env-inspector/internal/report/excel"
	"env-inspector/internal/report/html"
	"env-inspector/internal/report/text"
)

// Registry manages report writers for different formats.
// It provides a centralized way to access report writers by format name.
type Registry struct {
	writers map[string]ReportWriter
}

// NewRegistry creates a new report registry with pre-registered text, HTML and Excel writers.
// If timezone is nil, local time is used.
// htmlTemplatePath is optional; if empty, the HTML writer will use the embedded default template.
func NewRegistry(timezone *time.Location, htmlTemplatePath string) *Registry {
	if timezone == nil {
		timezone = time.Local
	}

	r := &Registry{
		writers: make(map[string]ReportWriter),
	}

	// Register writers using their Format() return values
	for _, w := range []ReportWriter{
		text.NewWriter(),
		html.NewWriter(timezone, htmlTemplatePath),
		excel.NewWriter(timezone),
	} {
		r.writers[w.Format()] = w
	}

	return r
}

// Get returns a writer for the specified format.
// Format names are case-insensitive (e.g., "Excel", "EXCEL", "excel" all work).
// Returns an error if the format is not supported.
func (r *Registry) Get(format string) (ReportWriter, error) {
	normalizedFormat := strings.ToLower(strings.TrimSpace(format))

	writer, ok := r.writers[normalizedFormat]
	if !ok {
		supported := r.GetAll()
		return nil, fmt.Errorf("unsupported report format %q, supported formats: %s",
			format, strings.Join(supported, ", "))
	}

	return writer, nil
}

// GetAll returns all supported format names in sorted order.
func (r *Registry) GetAll() []string {
	formats := make([]string, 0, len(r.writers))
	for format := range r.writers {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// Has checks if the specified format is supported.
// Format names are case-insensitive.
func (r *Registry) Has(format string) bool {
	normalizedFormat := strings.ToLower(strings.TrimSpace(format))
	_, ok := r.writers[normalizedFormat]
	return ok
}

// ExportResult records where one format was written.
type ExportResult struct {
	Format string
	Path   string
}

// Export writes report in every requested format into outputDir, using
// baseName plus the format's extension. Formats are written concurrently;
// duplicates are written once. All formats are resolved before any file
// is written, so an unsupported format writes nothing.
func (r *Registry) Export(ctx context.Context, report *model.Report, formats []string, outputDir, baseName string) ([]ExportResult, error) {
	writers := make([]ReportWriter, 0, len(formats))
	seen := make(map[string]bool, len(formats))
	for _, format := range formats {
		w, err := r.Get(format)
		if err != nil {
			return nil, err
		}
		if seen[w.Format()] {
			continue
		}
		seen[w.Format()] = true
		writers = append(writers, w)
	}

	if len(writers) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]ExportResult, len(writers))
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range writers {
		path := filepath.Join(outputDir, baseName+extension(w.Format()))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := w.Write(report, path); err != nil {
				return fmt.Errorf("failed to write %s report: %w", w.Format(), err)
			}
			results[i] = ExportResult{Format: w.Format(), Path: path}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// extension returns the file extension written by the named format.
func extension(format string) string {
	switch format {
	case "excel":
		return ".xlsx"
	case "html":
		return ".html"
	default:
		return ".txt"
	}
}
