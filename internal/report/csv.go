// =============================================================================
// UPN to EPC Converter - CSV Report
// =============================================================================
//
// One header row, then one row per input file, in the column order shared
// with the XLSX report.
//
// =============================================================================

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the file rows of the summary as CSV with a header row.
func WriteCSV(s Summary, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range s.Rows {
		if err := writer.Write(row.values()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the CSV report to path.
func WriteCSVFile(s Summary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv report: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(s, file); err != nil {
		return err
	}
	return file.Sync()
}
