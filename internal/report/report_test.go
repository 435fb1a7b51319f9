package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fklezin/qr.upn/internal/converter"
	"github.com/fklezin/qr.upn/internal/messages"
	"github.com/fklezin/qr.upn/internal/types"
	"github.com/fklezin/qr.upn/internal/validation"
)

func sampleSummary() Summary {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []converter.Result{
		{
			FilePath:       "/in/a.txt",
			OutputFile:     "/out/a_1.epc.txt",
			Success:        true,
			RecipientName:  "Drustvo Planinec",
			RecipientIBAN:  "SI56 1910 0000 0123 438",
			Amount:         "EUR100.00",
			Warnings:       []validation.Warning{{Field: "remittance", Rule: "remittance_present", Message: "remittance is empty"}},
			ProcessingTime: 3 * time.Millisecond,
		},
		{
			FilePath: "/in/b.txt",
			Error:    types.NewInvalidFormat(7),
			Kind:     types.InvalidFormat,
		},
		{
			FilePath: "/in/c.txt",
			Error:    errors.New("failed to read input: permission denied"),
		},
	}
	return FromResults(start, start.Add(time.Second), results, messages.English)
}

func TestFromResults(t *testing.T) {
	s := sampleSummary()
	require.Len(t, s.Rows, 3)

	ok := s.Rows[0]
	assert.Equal(t, "a.txt", ok.File)
	assert.Equal(t, StatusConverted, ok.Status)
	assert.Equal(t, "a_1.epc.txt", ok.Output)
	assert.Equal(t, "EUR100.00", ok.Amount)
	assert.Len(t, ok.Warnings, 1)
	assert.Empty(t, ok.ErrorKind)

	bad := s.Rows[1]
	assert.Equal(t, StatusFailed, bad.Status)
	assert.Equal(t, "INVALID_FORMAT", bad.ErrorKind)
	assert.Contains(t, bad.Message, "found 7")
	assert.Empty(t, bad.Output)

	io := s.Rows[2]
	assert.Equal(t, "NONE", io.ErrorKind)
	assert.Equal(t, "failed to read input: permission denied", io.Message)

	assert.Equal(t, Totals{Files: 3, Converted: 1, Failed: 2, Warnings: 1}, s.Totals())
}

func TestFromResults_Slovenian(t *testing.T) {
	s := FromResults(time.Now(), time.Now(), []converter.Result{{
		FilePath: "x.txt",
		Error:    types.NewEmptyInput(),
		Kind:     types.EmptyInput,
	}}, messages.Slovenian)

	assert.Contains(t, s.Rows[0].Message, "QR koda je prazna")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(sampleSummary(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, header, records[0])
	assert.Equal(t, "a.txt", records[1][0])
	assert.Equal(t, "3", records[1][9])
	assert.Equal(t, StatusFailed, records[2][1])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, WriteXLSX(sampleSummary(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetSummary, sheetFiles}, f.GetSheetList())

	rows, err := f.GetRows(sheetFiles)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "File", rows[0][0])
	assert.Equal(t, "Drustvo Planinec", rows[1][4])
	assert.Equal(t, "INVALID_FORMAT", rows[2][2])

	converted, err := f.GetCellValue(sheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "1", converted)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	s := sampleSummary()

	paths, err := Write(s, dir, []string{FormatXLSX, FormatCSV})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "summary_20260301_100001.xlsx"), paths[0])
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}

	_, err = Write(s, dir, []string{"pdf"})
	assert.Error(t, err)
}
