// =============================================================================
// UPN to EPC Converter - XLSX Report
// =============================================================================
//
// WORKBOOK LAYOUT:
//   Summary : label/value pairs (run times and totals)
//   Files   : header row plus one row per input file
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Summary"
	sheetFiles   = "Files"
)

// WriteXLSX writes the summary as an Excel workbook at path.
func WriteXLSX(s Summary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetFiles); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	// Summary sheet: one label/value pair per row.
	totals := s.Totals()
	pairs := [][]interface{}{
		{"Start", s.StartTime.Format("2006-01-02 15:04:05")},
		{"End", s.EndTime.Format("2006-01-02 15:04:05")},
		{"Duration", s.EndTime.Sub(s.StartTime).String()},
		{"Files", totals.Files},
		{"Converted", totals.Converted},
		{"Failed", totals.Failed},
		{"Warnings", totals.Warnings},
	}
	for i, pair := range pairs {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &pair); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	if err := f.SetColStyle(sheetSummary, "A", bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	if err := f.SetColWidth(sheetSummary, "A", "B", 20); err != nil {
		return fmt.Errorf("failed to size summary: %w", err)
	}

	// Files sheet: header plus one row per input file.
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetFiles, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetRowStyle(sheetFiles, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range s.Rows {
		values := row.values()
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetFiles, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheetFiles, "A", lastCol, 22); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
