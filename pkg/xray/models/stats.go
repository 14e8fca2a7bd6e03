package models

// FileStats holds the counters for one new (non-master) file.
type FileStats struct {
	// Name is the file name (no path).
	Name string `json:"name"`
	// Rows is the number of data rows read from the file.
	Rows int `json:"rows"`
	// URLColumn is the detected LinkedIn URL column, empty when none was found.
	URLColumn string `json:"url_column,omitempty"`
	// Skipped reports whether the file was skipped for lack of a URL column.
	Skipped bool `json:"skipped"`
	// Unique is the number of rows whose profile is not in the master set.
	Unique int `json:"unique"`
	// Duplicates is the number of rows whose profile is already in the master set.
	Duplicates int `json:"duplicates"`
}

// RunStats accumulates counters over one deduplication run.
type RunStats struct {
	// RunID identifies the run in logs and reports.
	RunID string `json:"run_id"`
	// MasterFile is the master file name (no path).
	MasterFile string `json:"master_file"`
	// MasterRows is the number of rows read from the master file.
	MasterRows int `json:"master_rows"`
	// MasterURLColumn is the detected master URL column, empty when the
	// per-row fallback was used.
	MasterURLColumn string `json:"master_url_column,omitempty"`
	// MasterIDs counts master rows that yielded a profile ID.
	MasterIDs int `json:"master_ids"`
	// MasterDistinct is the number of distinct IDs in the master set.
	MasterDistinct int `json:"master_distinct"`
	// Files holds per-file counters in input order.
	Files []FileStats `json:"files"`
	// TotalRecords is the number of rows read across all new files.
	TotalRecords int `json:"total_records"`
	// TotalDuplicates is the number of duplicate rows across all new files.
	TotalDuplicates int `json:"total_duplicates"`
	// TotalUnique is the number of rows collected for export.
	TotalUnique int `json:"total_unique"`
	// ExportPath is the written export file, empty when nothing was exported.
	ExportPath string `json:"export_path,omitempty"`
}

// AddFile appends per-file counters and folds them into the totals.
func (s *RunStats) AddFile(fs FileStats) {
	s.Files = append(s.Files, fs)
	s.TotalRecords += fs.Rows
	s.TotalDuplicates += fs.Duplicates
	s.TotalUnique += fs.Unique
}
