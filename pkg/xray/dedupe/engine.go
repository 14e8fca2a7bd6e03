// Package dedupe computes the set difference between a master dataset and
// newly collected datasets, keyed by canonical LinkedIn profile ID.
package dedupe

import (
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/linkedin"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

// IDSet is the read-only set of profile IDs known from the master dataset.
type IDSet struct {
	ids map[linkedin.ID]struct{}
}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...linkedin.ID) IDSet {
	s := IDSet{ids: make(map[linkedin.ID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id linkedin.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of distinct IDs.
func (s IDSet) Len() int {
	return len(s.ids)
}

// Engine classifies rows against a master set.
type Engine struct {
	// SampleRows bounds dataset-level URL column detection.
	SampleRows int
}

// New returns an Engine that inspects sampleRows leading rows when detecting
// URL columns.
func New(sampleRows int) *Engine {
	if sampleRows < 1 {
		sampleRows = linkedin.DefaultSampleRows
	}
	return &Engine{SampleRows: sampleRows}
}

// BuildResult describes how the master set was assembled.
type BuildResult struct {
	// Set holds the distinct master IDs.
	Set IDSet
	// Column is the dataset-level URL column; empty when Fallback is set.
	Column string
	// Fallback reports that no column was detected and each row was searched
	// individually.
	Fallback bool
	// Matched counts rows that yielded an ID, repeats included.
	Matched int
}

// Build extracts every master row's ID into a set. When no URL column is
// detected in the sample, each row is searched for its own URL column.
// Rows without an ID are skipped.
func (e *Engine) Build(master []models.Row) BuildResult {
	res := BuildResult{Set: NewIDSet()}
	column, ok := linkedin.DetectURLColumn(master, e.SampleRows)
	if ok {
		res.Column = column
	} else {
		res.Fallback = true
	}

	for _, row := range master {
		col := column
		if !ok {
			var found bool
			if col, found = linkedin.FindURLColumn(row); !found {
				continue
			}
		}
		id, hasID := linkedin.ExtractID(row.Value(col))
		if !hasID {
			continue
		}
		res.Set.ids[id] = struct{}{}
		res.Matched++
	}
	return res
}

// FilterResult is the outcome of filtering one new dataset.
type FilterResult struct {
	// Rows are the unique rows in input order, unmodified.
	Rows []models.Row
	// Column is the detected URL column.
	Column string
	// Skipped reports that no URL column was detected and nothing was classified.
	Skipped bool
	// Unique counts rows whose ID is absent from the master set.
	Unique int
	// Duplicates counts rows whose ID is present in the master set.
	Duplicates int
}

// Filter keeps the rows whose ID is not in master. Rows without an ID count
// as neither unique nor duplicate. A dataset without a detectable URL column
// is skipped as a whole; there is no per-row fallback for new files. master
// is never modified, so repeats across new datasets are all kept.
func (e *Engine) Filter(rows []models.Row, master IDSet) FilterResult {
	column, ok := linkedin.DetectURLColumn(rows, e.SampleRows)
	if !ok {
		return FilterResult{Skipped: true}
	}

	res := FilterResult{Column: column}
	for _, row := range rows {
		id, hasID := linkedin.ExtractID(row.Value(column))
		if !hasID {
			continue
		}
		if master.Has(id) {
			res.Duplicates++
			continue
		}
		res.Rows = append(res.Rows, row)
		res.Unique++
	}
	return res
}
