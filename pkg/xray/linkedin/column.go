package linkedin

import (
	"strings"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

// URLMarker is the substring that identifies a profile URL cell.
const URLMarker = "linkedin.com/in/"

// DefaultSampleRows is the number of leading rows inspected when detecting
// the URL column of a dataset.
const DefaultSampleRows = 10

// FindURLColumn returns the first column, in row order, whose value contains
// URLMarker. Detection looks at values only; header names vary too much
// between exports to be useful.
func FindURLColumn(row models.Row) (string, bool) {
	var (
		found string
		ok    bool
	)
	row.Each(func(column, value string) bool {
		if strings.Contains(value, URLMarker) {
			found, ok = column, true
			return false
		}
		return true
	})
	return found, ok
}

// DetectURLColumn scans at most sampleRows leading rows and returns the
// first qualifying column. A sampleRows below 1 uses DefaultSampleRows.
func DetectURLColumn(rows []models.Row, sampleRows int) (string, bool) {
	if sampleRows < 1 {
		sampleRows = DefaultSampleRows
	}
	n := min(sampleRows, len(rows))
	for i := 0; i < n; i++ {
		if col, ok := FindURLColumn(rows[i]); ok {
			return col, true
		}
	}
	return "", false
}
