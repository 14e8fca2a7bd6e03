package export

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLength is the longest sheet name a workbook accepts.
const MaxSheetNameLength = 31

const invalidSheetChars = `:\/?*[]`

// CheckSheetName reports whether name can title a workbook sheet.
func CheckSheetName(name string) error {
	if name == "" {
		return fmt.Errorf("sheet name is empty")
	}
	if n := utf8.RuneCountInString(name); n > MaxSheetNameLength {
		return fmt.Errorf("sheet name %q is %d characters long (max %d)", name, n, MaxSheetNameLength)
	}
	if i := strings.IndexAny(name, invalidSheetChars); i >= 0 {
		return fmt.Errorf("sheet name %q contains %q (not allowed: %s)", name, name[i], invalidSheetChars)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("sheet name %q cannot start or end with an apostrophe", name)
	}
	return nil
}

// CheckPrefix reports whether prefix keeps export files inside the output
// directory.
func CheckPrefix(prefix string) error {
	if strings.ContainsAny(prefix, `/\`) || strings.Contains(prefix, "..") {
		return fmt.Errorf("file name prefix %q must not contain path separators or \"..\"", prefix)
	}
	return nil
}

// Check validates the writer settings without touching the filesystem.
func (w *Writer) Check() error {
	switch w.Format {
	case "", FormatXLSX, FormatCSV:
	default:
		return fmt.Errorf("invalid export format: %s", w.Format)
	}
	if w.SheetName != "" {
		if err := CheckSheetName(w.SheetName); err != nil {
			return err
		}
	}
	return CheckPrefix(w.Prefix)
}
