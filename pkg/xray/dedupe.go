package xray

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/dedupe"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/parser"
)

// Dedupe exports the rows of newFiles whose LinkedIn profile is not already
// in masterFile. Files are read one at a time in the given order; the first
// file that fails to parse aborts the run and nothing is exported. Every
// stage is reported through rep.
func Dedupe(ctx context.Context, masterFile string, newFiles []string, opts Options, rep Reporter) (*models.RunStats, error) {
	if rep == nil {
		rep = Discard
	}

	if masterFile == "" {
		rep.Emit(LevelError, "Error: Please provide a master database file.")
		return nil, ErrNoMasterFile
	}
	if len(newFiles) == 0 {
		rep.Emit(LevelError, "Error: Please provide at least one search results file.")
		return nil, ErrNoNewFiles
	}
	writer := opts.writer()
	if err := writer.Check(); err != nil {
		rep.Emit(LevelError, fmt.Sprintf("Error: %v", err))
		return nil, fmt.Errorf("export settings: %w", err)
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	stats := &models.RunStats{RunID: runID, MasterFile: filepath.Base(masterFile)}
	engine := dedupe.New(opts.sampleRows())

	// Master set
	rep.Emit(LevelInfo, "Parsing master database...")
	master, err := readDataset(masterFile, rep)
	if err != nil {
		return stats, err
	}
	stats.MasterRows = master.Len()
	rep.Emit(LevelInfo, fmt.Sprintf("Master database loaded: %d rows", master.Len()))

	built := engine.Build(master.Rows)
	if built.Fallback {
		rep.Emit(LevelError, "Warning: No LinkedIn URL column detected in master file. Using all columns.")
	} else {
		rep.Emit(LevelInfo, fmt.Sprintf("Detected URL column in master: %q", built.Column))
	}
	stats.MasterURLColumn = built.Column
	stats.MasterIDs = built.Matched
	stats.MasterDistinct = built.Set.Len()
	rep.Emit(LevelSuccess, fmt.Sprintf("Found %d LinkedIn IDs in Master database", built.Matched))

	// New files
	var batch []models.Row
	for i, path := range newFiles {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		name := filepath.Base(path)
		rep.Emit(LevelInfo, fmt.Sprintf("Processing file %d/%d: %s...", i+1, len(newFiles), name))
		ds, err := readDataset(path, rep)
		if err != nil {
			return stats, err
		}
		rep.Emit(LevelInfo, fmt.Sprintf("File contains %d rows", ds.Len()))

		res := engine.Filter(ds.Rows, built.Set)
		fs := models.FileStats{Name: name, Rows: ds.Len(), URLColumn: res.Column, Skipped: res.Skipped}
		if res.Skipped {
			rep.Emit(LevelError, fmt.Sprintf("Warning: No LinkedIn URL column detected in %s", name))
			stats.AddFile(fs)
			continue
		}
		rep.Emit(LevelInfo, fmt.Sprintf("Detected URL column: %q", res.Column))

		fs.Unique = res.Unique
		fs.Duplicates = res.Duplicates
		stats.AddFile(fs)
		batch = append(batch, res.Rows...)
		rep.Emit(LevelInfo, fmt.Sprintf("  → %d unique, %d duplicates", res.Unique, res.Duplicates))
	}

	rep.Emit(LevelInfo, fmt.Sprintf("Total records processed: %d", stats.TotalRecords))
	rep.Emit(LevelInfo, fmt.Sprintf("Total duplicates removed: %d", stats.TotalDuplicates))
	rep.Emit(LevelSuccess, fmt.Sprintf("Unique records to export: %d", len(batch)))

	// Export
	if len(batch) == 0 {
		rep.Emit(LevelInfo, "No unique records found. All entries already exist in master database.")
		return stats, nil
	}
	rep.Emit(LevelInfo, "Exporting unique records...")
	path, _, err := writer.Write(batch)
	if err != nil {
		rep.Emit(LevelError, fmt.Sprintf("Error: %v", err))
		return stats, fmt.Errorf("export: %w", err)
	}
	stats.ExportPath = path
	rep.Emit(LevelSuccess, fmt.Sprintf("Export complete! File: %s", filepath.Base(path)))
	return stats, nil
}

func readDataset(path string, rep Reporter) (models.Dataset, error) {
	ds, err := parser.ReadFile(path)
	if err != nil {
		perr := NewParseError(filepath.Base(path), err)
		rep.Emit(LevelError, fmt.Sprintf("Error: %v", perr))
		return models.Dataset{}, perr
	}
	return ds, nil
}
