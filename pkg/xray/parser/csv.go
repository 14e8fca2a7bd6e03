package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

// ReadCSV reads a delimited text file. UTF-8 and UTF-16 byte order marks are
// honoured and stripped; input without a BOM is read as UTF-8.
func ReadCSV(path string) (models.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	return DecodeCSV(file, filepath.Base(path), delimiterForExt(filepath.Ext(path)))
}

// DecodeCSV parses delimited text from r. A zero delim picks ';' when the
// first line has semicolons and no commas, ',' otherwise.
func DecodeCSV(r io.Reader, name string, delim rune) (models.Dataset, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	b, err := io.ReadAll(decoded)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("decode csv: %w", err)
	}

	if delim == 0 {
		delim = sniffDelimiter(b)
	}

	cr := csv.NewReader(bytes.NewReader(b))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Dataset{}, fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, rec)
	}
	return Tabulate(name, records), nil
}

func delimiterForExt(ext string) rune {
	if strings.EqualFold(ext, ".tsv") {
		return '\t'
	}
	return 0
}

func sniffDelimiter(b []byte) rune {
	line := b
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		line = b[:i]
	}
	if bytes.IndexByte(line, ';') >= 0 && bytes.IndexByte(line, ',') < 0 {
		return ';'
	}
	return ','
}
