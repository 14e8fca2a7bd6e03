package parser

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestReadWorkbook(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Name")
	f.SetCellValue(sheetName, "B1", "Profile Link")
	f.SetCellValue(sheetName, "C1", "Score")
	f.SetCellValue(sheetName, "A2", "Jane")
	f.SetCellValue(sheetName, "B2", "https://www.linkedin.com/in/jane")
	f.SetCellValue(sheetName, "C2", 100)
	f.SetCellValue(sheetName, "A3", "Bob")
	f.SetCellValue(sheetName, "C3", 200.5)

	tmpFile := filepath.Join(t.TempDir(), "leads.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	ds, err := ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if ds.Name != "leads.xlsx" {
		t.Errorf("Expected name leads.xlsx, got %q", ds.Name)
	}
	if diff := cmp.Diff([]string{"Name", "Profile Link", "Score"}, ds.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(ds.Rows))
	}
	if got := ds.Rows[0].Value("Profile Link"); got != "https://www.linkedin.com/in/jane" {
		t.Errorf("Expected profile link, got %q", got)
	}
	if got := ds.Rows[0].Value("Score"); got != "100" {
		t.Errorf("Expected '100', got %q", got)
	}

	// Missing cells materialize as "".
	v, ok := ds.Rows[1].Get("Profile Link")
	if !ok || v != "" {
		t.Errorf("Expected empty present cell, got %q (present=%v)", v, ok)
	}
	if got := ds.Rows[1].Value("Score"); got != "200.5" {
		t.Errorf("Expected '200.5', got %q", got)
	}
}

func TestReadWorkbookUsesFirstSheetAndUsedRange(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet("Other"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	f.SetCellValue("Other", "A1", "ignored")

	// Data starts at B3 with a blank row in the middle.
	f.SetCellValue("Sheet1", "B3", "url")
	f.SetCellValue("Sheet1", "C3", "url")
	f.SetCellValue("Sheet1", "B4", "linkedin.com/in/a")
	f.SetCellValue("Sheet1", "C6", "linkedin.com/in/b")

	tmpFile := filepath.Join(t.TempDir(), "range.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	ds, err := ReadWorkbook(tmpFile)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}

	if diff := cmp.Diff([]string{"url", "url_1"}, ds.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(ds.Rows))
	}
	if got := ds.Rows[1].Value("url_1"); got != "linkedin.com/in/b" {
		t.Errorf("Expected second row url_1, got %q", got)
	}
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	path := writeFile(t, "broken.xlsx", []byte("this is not a zip archive"))
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected error for malformed workbook")
	}
}
