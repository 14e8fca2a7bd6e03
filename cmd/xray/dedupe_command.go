package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/export"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/output"
)

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var (
		masterPath string
		outputDir  string
		format     string
		reportPath string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "dedupe --master <master.xlsx> <new-file>...",
		Short: "Export the rows of new files whose LinkedIn profile is not in the master file",
		Long: `dedupe reads a master spreadsheet of known leads and any number of new
spreadsheets (xlsx or csv). Every new row whose LinkedIn profile ID is not in
the master file is written to Cleaned_Leads_<date>.xlsx.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts := xray.DefaultOptions()
			opts.SampleRows = cfg.Dedupe.SampleRows
			opts.OutputDir = cfg.Paths.OutputDir
			opts.SheetName = cfg.Dedupe.SheetName
			opts.Prefix = cfg.Dedupe.FilenamePrefix
			opts.RunID = uuid.NewString()

			if strings.TrimSpace(outputDir) != "" {
				opts.OutputDir = outputDir
			}
			formatName := cfg.Dedupe.ExportFormat
			if cmd.Flags().Changed("format") {
				formatName = format
			}
			if opts.Format, err = export.ParseFormat(formatName); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status, logger, err := ctx.statusLog(out, "dedupe", opts.RunID)
			if err != nil {
				return err
			}
			logger.Info("dedupe started", "master", masterPath, "files", len(args))

			started := time.Now()
			stats, err := xray.Dedupe(cmd.Context(), masterPath, args, opts, status)
			if err != nil {
				logger.Error("dedupe failed", "error", err)
				return err
			}
			logger.Info("dedupe finished",
				"unique", stats.TotalUnique,
				"duplicates", stats.TotalDuplicates,
				"export", stats.ExportPath,
				"elapsed", time.Since(started).Round(time.Millisecond).String(),
			)

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderRunSummary(stats))

			if reportPath != "" {
				data, err := output.ToJSON(stats, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				if err := output.WriteFile(reportPath, data); err != nil {
					return err
				}
				fmt.Fprintf(out, "Report written to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&masterPath, "master", "m", "", "Master database file (xlsx or csv)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the export file (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Export format: xlsx or csv")
	cmd.Flags().StringVar(&reportPath, "report-json", "", "Write the run statistics as JSON to this path")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the JSON report")
	return cmd
}

func renderRunSummary(stats *models.RunStats) string {
	t := newSummaryTable("Dedupe run "+stats.RunID, "File", "Rows", "URL Column", "Unique", "Duplicates").
		countColumns(1, 3, 4)

	masterColumn := stats.MasterURLColumn
	if masterColumn == "" {
		masterColumn = "(per row)"
	}
	t.addRow(stats.MasterFile+" (master)", strconv.Itoa(stats.MasterRows), masterColumn, "-", "-")
	for _, f := range stats.Files {
		column := f.URLColumn
		if f.Skipped {
			column = "(skipped)"
		}
		t.addRow(f.Name, strconv.Itoa(f.Rows), column, strconv.Itoa(f.Unique), strconv.Itoa(f.Duplicates))
	}

	exported := "nothing exported"
	if stats.ExportPath != "" {
		exported = filepath.Base(stats.ExportPath)
	}
	t.setTotals("Total", strconv.Itoa(stats.TotalRecords), exported,
		strconv.Itoa(stats.TotalUnique), strconv.Itoa(stats.TotalDuplicates))
	return t.render()
}
