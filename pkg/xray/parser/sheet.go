package parser

import (
	"fmt"
	"path/filepath"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads the first sheet of an xlsx-family file.
func ReadWorkbook(path string) (models.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return readFirstSheet(f, filepath.Base(path))
}

func readFirstSheet(f *excelize.File, name string) (models.Dataset, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.Dataset{Name: name}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return models.Dataset{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return Tabulate(name, rows), nil
}
