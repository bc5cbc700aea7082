// Package text renders envcheck reports as plain text. The same layout
// is printed to standard output and written to .txt files.
package text

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"env-inspector/internal/model"
)

const (
	markInstalled = "✓"
	markMissing   = "✗"

	// CompletionNotice is the last line of every text report.
	CompletionNotice = "Environment check complete!"
)

// Writer implements report.ReportWriter for plain text.
type Writer struct{}

// NewWriter creates a new text report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns the format identifier for this writer.
func (w *Writer) Format() string {
	return "text"
}

// Write renders the report into a .txt file.
func (w *Writer) Write(report *model.Report, outputPath string) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	// Ensure output path has .txt extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".txt") {
		outputPath = outputPath + ".txt"
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := w.Render(file, report); err != nil {
		return err
	}
	return file.Close()
}

// Render writes the sectioned report to out: runtime information,
// environment variables, platform information, library availability
// and the completion notice.
//
// Library results are printed in scan order. When the scan faulted, the
// results gathered before the fault are followed by a single error line.
func (w *Writer) Render(out io.Writer, report *model.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	bw := bufio.NewWriter(out)

	if rt := report.Runtime; rt != nil {
		fmt.Fprintln(bw, "Runtime information:")
		fmt.Fprintf(bw, "Go version: %s\n", rt.GoVersion)
		fmt.Fprintf(bw, "Executable path: %s\n", rt.Executable)
		fmt.Fprintf(bw, "Current directory: %s\n", rt.WorkingDir)
		fmt.Fprintf(bw, "Current time: %s\n", rt.FormattedTime())
	}

	fmt.Fprintln(bw, "\nEnvironment variables:")
	for _, ev := range report.Environment {
		fmt.Fprintf(bw, "%s: %s\n", ev.Name, ev.Value)
	}

	if p := report.Platform; p != nil {
		fmt.Fprintln(bw, "\nSystem Platform Information:")
		fmt.Fprintf(bw, "Platform: %s\n", p.OS)
		fmt.Fprintf(bw, "Architecture: %s\n", p.Arch)
		fmt.Fprintf(bw, "Hostname: %s\n", p.Hostname)
		fmt.Fprintf(bw, "CPUs: %d\n", p.NumCPU)
	}

	if scan := report.Libraries; scan != nil {
		fmt.Fprintf(bw, "\nChecking for %s:\n", scan.Title)
		for _, r := range scan.Results {
			fmt.Fprintln(bw, ResultLine(r))
		}
		if scan.Faulted() {
			fmt.Fprintf(bw, "Error checking libraries: %s\n", scan.Fault)
		}
	}

	fmt.Fprintf(bw, "\n%s\n", CompletionNotice)

	return bw.Flush()
}

// ResultLine formats one probe result, e.g. "✓ pandas is installed".
func ResultLine(r *model.ProbeResult) string {
	mark := markMissing
	if r.Installed {
		mark = markInstalled
	}
	return fmt.Sprintf("%s %s is %s", mark, r.Name, r.StatusText())
}
