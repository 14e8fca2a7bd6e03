// Package parser reads spreadsheet and delimited text files into datasets.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

// ErrUnsupportedFormat indicates a file type that cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// ReadFile reads the first sheet of path into a dataset, picking the reader
// from the file extension. Unknown extensions are sniffed: zip archives are
// read as workbooks, anything else as CSV.
func ReadFile(path string) (models.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return ReadCSV(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ReadWorkbook(path)
	case ".xls":
		return models.Dataset{}, fmt.Errorf("%w: legacy .xls workbooks are not supported, save as .xlsx", ErrUnsupportedFormat)
	}

	head, err := readHead(path, 8)
	if err != nil {
		return models.Dataset{}, err
	}
	switch {
	case bytes.HasPrefix(head, zipMagic):
		return ReadWorkbook(path)
	case bytes.HasPrefix(head, oleMagic):
		return models.Dataset{}, fmt.Errorf("%w: legacy binary workbook", ErrUnsupportedFormat)
	default:
		return ReadCSV(path)
	}
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return buf[:read], nil
}
