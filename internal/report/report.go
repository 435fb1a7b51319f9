// =============================================================================
// UPN to EPC Converter - Run Reports
// =============================================================================
//
// This module turns the results of a batch run into summary reports:
//   - XLSX workbook (sheets "Summary" and "Files") for people
//   - CSV file with one row per input file for scripts
//
// Error messages in the reports are rendered in the configured language; the
// error kind column always carries the stable machine identifier.
//
// =============================================================================

package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fklezin/qr.upn/internal/converter"
	"github.com/fklezin/qr.upn/internal/messages"
	"github.com/fklezin/qr.upn/internal/types"
)

// Supported report formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Status values used in the reports.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// =============================================================================
// SUMMARY STRUCTURE
// =============================================================================

// Row is one input file in the report.
type Row struct {
	File      string
	Status    string
	ErrorKind string
	Message   string
	Recipient string
	IBAN      string
	Amount    string
	Output    string
	Warnings  []string
	Duration  time.Duration
}

// Summary is a whole batch run.
type Summary struct {
	StartTime time.Time
	EndTime   time.Time
	Rows      []Row
}

// Totals are the aggregate counts of a Summary.
type Totals struct {
	Files     int
	Converted int
	Failed    int
	Warnings  int
}

// FromResults builds a Summary from converter results.
func FromResults(start, end time.Time, results []converter.Result, lang messages.Lang) Summary {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		row := Row{
			File:      filepath.Base(r.FilePath),
			Recipient: r.RecipientName,
			IBAN:      r.RecipientIBAN,
			Amount:    r.Amount,
			Duration:  r.ProcessingTime,
		}
		if r.OutputFile != "" {
			row.Output = filepath.Base(r.OutputFile)
		}

		if r.Success {
			row.Status = StatusConverted
		} else {
			row.Status = StatusFailed
			row.ErrorKind = r.Kind.String()
			row.Message = failureMessage(r, lang)
		}

		for _, w := range r.Warnings {
			row.Warnings = append(row.Warnings, w.String())
		}

		rows = append(rows, row)
	}

	return Summary{StartTime: start, EndTime: end, Rows: rows}
}

// Totals counts files, outcomes and warnings.
func (s Summary) Totals() Totals {
	t := Totals{Files: len(s.Rows)}
	for _, row := range s.Rows {
		if row.Status == StatusConverted {
			t.Converted++
		} else {
			t.Failed++
		}
		t.Warnings += len(row.Warnings)
	}
	return t
}

// =============================================================================
// OUTPUT
// =============================================================================

// Write writes the summary in every requested format into dir and returns
// the written paths.
func Write(s Summary, dir string, formats []string) ([]string, error) {
	stamp := s.EndTime.Format("20060102_150405")
	var written []string

	for _, format := range formats {
		path := filepath.Join(dir, fmt.Sprintf("summary_%s.%s", stamp, format))

		var err error
		switch format {
		case FormatXLSX:
			err = WriteXLSX(s, path)
		case FormatCSV:
			err = WriteCSVFile(s, path)
		default:
			err = fmt.Errorf("unknown report format %q", format)
		}
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

// header is the column order shared by the XLSX and CSV reports.
var header = []string{
	"File",
	"Status",
	"Error Kind",
	"Message",
	"Recipient",
	"IBAN",
	"Amount",
	"Output",
	"Warnings",
	"Duration (ms)",
}

func (row Row) values() []string {
	return []string{
		row.File,
		row.Status,
		row.ErrorKind,
		row.Message,
		row.Recipient,
		row.IBAN,
		row.Amount,
		row.Output,
		strings.Join(row.Warnings, "; "),
		fmt.Sprintf("%d", row.Duration.Milliseconds()),
	}
}

func failureMessage(r converter.Result, lang messages.Lang) string {
	if r.Kind == types.KindNone && r.Error != nil {
		// I/O and cancellation errors are outside the taxonomy; keep the detail.
		return r.Error.Error()
	}
	return messages.For(r.Error, lang)
}
