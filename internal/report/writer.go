// Package report provides report generation for envcheck results.
// It defines the ReportWriter interface and provides implementations for
// the text, HTML and Excel output formats.
package report

import (
	"env-inspector/internal/model"
)

// ReportWriter defines the interface for generating envcheck reports.
type ReportWriter interface {
	// Write generates a report and saves it to the specified output path.
	// A missing format extension is appended to the path.
	//
	// Returns an error if the report generation or file writing fails.
	Write(report *model.Report, outputPath string) error

	// Format returns the format identifier for this writer.
	// Values are "text", "html" and "excel".
	Format() string
}
