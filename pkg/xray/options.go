// Package xray removes already-known LinkedIn profiles from lead spreadsheets.
package xray

import (
	"time"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/export"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/linkedin"
)

// Options configures a deduplication run.
type Options struct {
	// SampleRows is how many leading rows are inspected to detect the URL
	// column of each file. Zero uses linkedin.DefaultSampleRows.
	SampleRows int
	// OutputDir receives the export file. Empty means the working directory.
	OutputDir string
	// Format selects the export file format. Empty means xlsx.
	Format export.Format
	// SheetName names the exported sheet (xlsx only).
	SheetName string
	// Prefix starts the export file name.
	Prefix string
	// RunID identifies the run; generated when empty.
	RunID string
	// Now supplies the export date. If nil, time.Now is used.
	Now func() time.Time
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		SampleRows: linkedin.DefaultSampleRows,
		Format:     export.FormatXLSX,
		SheetName:  export.DefaultSheetName,
		Prefix:     export.DefaultPrefix,
	}
}

// sampleRows returns the detection sample size.
func (o Options) sampleRows() int {
	if o.SampleRows > 0 {
		return o.SampleRows
	}
	return linkedin.DefaultSampleRows
}

func (o Options) writer() *export.Writer {
	return &export.Writer{
		Dir:       o.OutputDir,
		Format:    o.Format,
		SheetName: o.SheetName,
		Prefix:    o.Prefix,
		Now:       o.Now,
	}
}
