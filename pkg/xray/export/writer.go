// Package export writes deduplicated rows to a spreadsheet file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

// Format is the output file format.
type Format string

const (
	// FormatXLSX writes an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
	// FormatCSV writes UTF-8 comma separated text with a byte order mark.
	FormatCSV Format = "csv"
)

const (
	// DefaultSheetName names the single sheet of an xlsx export.
	DefaultSheetName = "Unique Records"
	// DefaultPrefix starts every export file name.
	DefaultPrefix = "Cleaned_Leads"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatXLSX, nil
	case FormatXLSX, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("invalid export format: %s (must be xlsx or csv)", s)
	}
}

// Writer writes a batch of rows to a dated file in Dir.
type Writer struct {
	// Dir is the output directory; created when missing.
	Dir string
	// Format selects xlsx or csv output.
	Format Format
	// SheetName names the xlsx sheet.
	SheetName string
	// Prefix starts the file name; the ISO date and extension follow.
	Prefix string
	// Now supplies the date embedded in the file name.
	Now func() time.Time
}

// FileName returns the export file name for the given instant, e.g.
// Cleaned_Leads_2024-05-01.xlsx. The date is taken in UTC.
func FileName(prefix string, now time.Time, format Format) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.UTC().Format("2006-01-02"), format)
}

// Write writes rows and returns the file path. An empty batch writes nothing
// and reports false.
func (w *Writer) Write(rows []models.Row) (string, bool, error) {
	if len(rows) == 0 {
		return "", false, nil
	}
	if err := w.Check(); err != nil {
		return "", false, err
	}

	format := w.Format
	if format == "" {
		format = FormatXLSX
	}
	prefix := w.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, FileName(prefix, now(), format))

	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(path, rows)
	case FormatXLSX:
		sheet := w.SheetName
		if sheet == "" {
			sheet = DefaultSheetName
		}
		err = writeXLSX(path, sheet, rows)
	default:
		err = fmt.Errorf("invalid export format: %s", format)
	}
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

// UnionColumns returns every column used by rows in order of first
// appearance. Rows from different files keep their own columns.
func UnionColumns(rows []models.Row) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		row.Each(func(column, _ string) bool {
			if _, ok := seen[column]; !ok {
				seen[column] = struct{}{}
				columns = append(columns, column)
			}
			return true
		})
	}
	return columns
}

func writeXLSX(path, sheet string, rows []models.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	columns := UnionColumns(rows)
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(columns))
		for j, c := range columns {
			// Columns the row does not have stay empty.
			if v, ok := row.Get(c); ok {
				cells[j] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeCSV(path string, rows []models.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.UseCRLF = true

	columns := UnionColumns(rows)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(columns))
		for j, c := range columns {
			rec[j] = row.Value(c)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
