// Package excel provides Excel report generation for envcheck.
// It implements the report.ReportWriter interface to generate .xlsx files
// with an overview sheet and a library availability sheet.
package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"env-inspector/internal/model"
)

const (
	// Sheet names
	sheetOverview  = "Overview"
	sheetLibraries = "Libraries"

	// Default sheet to remove
	defaultSheet = "Sheet1"

	// Colors for conditional formatting (RGB without #)
	colorMissingBg   = "FFEB9C" // Yellow background for not installed
	colorMissingFg   = "9C6500" // Dark yellow text for not installed
	colorFaultBg     = "FFC7CE" // Red background for scan faults
	colorFaultFg     = "9C0006" // Dark red text for scan faults
	colorHeaderBg    = "4472C4" // Blue background for header
	colorHeaderFg    = "FFFFFF" // White text for header
	colorInstalledBg = "C6EFCE" // Green background for installed
	colorInstalledFg = "006100" // Dark green text for installed
)

// Writer implements report.ReportWriter for Excel format.
type Writer struct {
	timezone *time.Location
}

// NewWriter creates a new Excel report writer.
// If timezone is nil, it defaults to local time.
func NewWriter(timezone *time.Location) *Writer {
	if timezone == nil {
		timezone = time.Local
	}
	return &Writer{
		timezone: timezone,
	}
}

// Format returns the format identifier for this writer.
func (w *Writer) Format() string {
	return "excel"
}

// Write generates an Excel report.
func (w *Writer) Write(report *model.Report, outputPath string) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	// Ensure output path has .xlsx extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.createOverviewSheet(f, report); err != nil {
		return fmt.Errorf("failed to create overview sheet: %w", err)
	}

	if err := w.createLibrariesSheet(f, report.Libraries); err != nil {
		return fmt.Errorf("failed to create libraries sheet: %w", err)
	}

	// Remove default Sheet1
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	// Set active sheet to overview
	idx, _ := f.GetSheetIndex(sheetOverview)
	f.SetActiveSheet(idx)

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// overviewRow is one label/value pair on the overview sheet.
// An empty value with section set renders as a section header.
type overviewRow struct {
	label   string
	value   interface{}
	section bool
}

// createOverviewSheet creates the run, runtime, environment and platform sheet.
func (w *Writer) createOverviewSheet(f *excelize.File, report *model.Report) error {
	if _, err := f.NewSheet(sheetOverview); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 18,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	headerStyle, err := w.createHeaderStyle(f)
	if err != nil {
		return err
	}

	// Set column widths
	f.SetColWidth(sheetOverview, "A", "A", 24)
	f.SetColWidth(sheetOverview, "B", "B", 60)

	// Title
	f.MergeCell(sheetOverview, "A1", "B1")
	f.SetCellValue(sheetOverview, "A1", "Environment Check Report")
	f.SetCellStyle(sheetOverview, "A1", "B1", titleStyle)
	f.SetRowHeight(sheetOverview, 1, 30)

	rows := []overviewRow{
		{label: "Run ID", value: report.RunID},
		{label: "Generated at", value: report.GeneratedAt.In(w.timezone).Format(model.TimeLayout)},
		{label: "Duration", value: report.Duration.Round(time.Millisecond).String()},
	}
	if report.Version != "" {
		rows = append(rows, overviewRow{label: "Tool version", value: report.Version})
	}

	if rt := report.Runtime; rt != nil {
		rows = append(rows,
			overviewRow{label: "Runtime information", section: true},
			overviewRow{label: "Go version", value: rt.GoVersion},
			overviewRow{label: "Executable path", value: rt.Executable},
			overviewRow{label: "Current directory", value: rt.WorkingDir},
			overviewRow{label: "Current time", value: rt.FormattedTime()},
		)
	}

	rows = append(rows, overviewRow{label: "Environment variables", section: true})
	for _, ev := range report.Environment {
		rows = append(rows, overviewRow{label: ev.Name, value: ev.Value})
	}

	if p := report.Platform; p != nil {
		rows = append(rows,
			overviewRow{label: "System platform information", section: true},
			overviewRow{label: "Platform", value: p.OS},
			overviewRow{label: "Architecture", value: p.Arch},
			overviewRow{label: "Hostname", value: p.Hostname},
			overviewRow{label: "CPUs", value: p.NumCPU},
		)
	}

	for i, item := range rows {
		row := i + 3 // Start from row 3
		labelCell := fmt.Sprintf("A%d", row)
		valueCell := fmt.Sprintf("B%d", row)
		f.SetCellValue(sheetOverview, labelCell, item.label)
		if item.section {
			f.MergeCell(sheetOverview, labelCell, valueCell)
			f.SetCellStyle(sheetOverview, labelCell, valueCell, headerStyle)
			continue
		}
		f.SetCellValue(sheetOverview, valueCell, item.value)
	}

	return nil
}

// createLibrariesSheet creates the library availability worksheet.
func (w *Writer) createLibrariesSheet(f *excelize.File, scan *model.ScanResult) error {
	if _, err := f.NewSheet(sheetLibraries); err != nil {
		return err
	}

	headerStyle, err := w.createHeaderStyle(f)
	if err != nil {
		return err
	}
	installedStyle, err := w.createFillStyle(f, colorInstalledFg, colorInstalledBg)
	if err != nil {
		return err
	}
	missingStyle, err := w.createFillStyle(f, colorMissingFg, colorMissingBg)
	if err != nil {
		return err
	}
	faultStyle, err := w.createFillStyle(f, colorFaultFg, colorFaultBg)
	if err != nil {
		return err
	}

	headers := []string{"Library", "Kind", "Target", "Status", "Duration (ms)"}
	colWidths := map[string]float64{"A": 24, "B": 12, "C": 30, "D": 16, "E": 14}
	for col, width := range colWidths {
		f.SetColWidth(sheetLibraries, col, col, width)
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", columnName(i+1))
		f.SetCellValue(sheetLibraries, cell, header)
		f.SetCellStyle(sheetLibraries, cell, cell, headerStyle)
	}
	f.SetRowHeight(sheetLibraries, 1, 25)

	// Freeze header row
	f.SetPanes(sheetLibraries, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if scan == nil {
		return nil
	}

	row := 2
	for _, r := range scan.Results {
		f.SetCellValue(sheetLibraries, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(sheetLibraries, fmt.Sprintf("B%d", row), string(r.Kind))
		f.SetCellValue(sheetLibraries, fmt.Sprintf("C%d", row), r.Target)
		f.SetCellValue(sheetLibraries, fmt.Sprintf("D%d", row), r.StatusText())
		f.SetCellValue(sheetLibraries, fmt.Sprintf("E%d", row), r.Duration.Milliseconds())

		style := missingStyle
		if r.Installed {
			style = installedStyle
		}
		cell := fmt.Sprintf("D%d", row)
		f.SetCellStyle(sheetLibraries, cell, cell, style)
		row++
	}

	if scan.Faulted() {
		start := fmt.Sprintf("A%d", row)
		end := fmt.Sprintf("E%d", row)
		f.MergeCell(sheetLibraries, start, end)
		f.SetCellValue(sheetLibraries, start, "Error checking libraries: "+scan.Fault)
		f.SetCellStyle(sheetLibraries, start, end, faultStyle)
		row++

		for _, name := range scan.Skipped {
			f.SetCellValue(sheetLibraries, fmt.Sprintf("A%d", row), name)
			f.SetCellValue(sheetLibraries, fmt.Sprintf("D%d", row), "not checked")
			row++
		}
	}

	return nil
}

// Helper functions

func (w *Writer) createHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: colorHeaderFg,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{colorHeaderBg},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

func (w *Writer) createFillStyle(f *excelize.File, fg, bg string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Color: fg,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{bg},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

// columnName converts a 1-based column index to Excel column name (A, B, ..., Z, AA, AB, ...).
func columnName(index int) string {
	result := ""
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}
