package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/export"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/output"
)

const profilesPrefix = "Profiles"

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect, export or clear scraped profiles",
	}

	profilesCmd.AddCommand(newProfilesListCommand(ctx))
	profilesCmd.AddCommand(newProfilesExportCommand(ctx))
	profilesCmd.AddCommand(newProfilesClearCommand(ctx))
	return profilesCmd
}

func newProfilesListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scraped profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			profiles, err := store.Profiles(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := output.ProfilesToJSON(profiles, true)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			sess, err := store.Session(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(out, "No profiles collected yet.")
			} else {
				fmt.Fprintln(out, renderProfiles(profiles))
			}
			fmt.Fprintf(out, "State: %s\n", store.Path())
			fmt.Fprintf(out, "Session: active=%s page=%d/%d\n", yesNo(sess.Active), sess.CurrentPage, sess.MaxPages)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print profiles as JSON")
	return cmd
}

func newProfilesExportCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write scraped profiles to a spreadsheet that can be fed to dedupe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			profiles, err := store.Profiles(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				fmt.Fprintln(out, "No profiles to export.")
				return nil
			}

			formatName := cfg.Dedupe.ExportFormat
			if cmd.Flags().Changed("format") {
				formatName = format
			}
			f, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			dir := cfg.Paths.OutputDir
			if strings.TrimSpace(outputDir) != "" {
				dir = outputDir
			}

			w := &export.Writer{Dir: dir, Format: f, SheetName: profilesPrefix, Prefix: profilesPrefix}
			path, _, err := w.Write(models.ProfileRows(profiles))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported %d profiles to %s\n", len(profiles), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the export file (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Export format: xlsx or csv")
	return cmd
}

func newProfilesClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every scraped profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			unlock, err := acquireScrapeLock(cfg)
			if err != nil {
				return err
			}
			defer unlock()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all scraped profiles.")
			return nil
		},
	}
}

func renderProfiles(profiles []models.Profile) string {
	t := newSummaryTable(fmt.Sprintf("Scraped profiles (%d)", len(profiles)), "#", "Name", "URL").
		countColumns(0)
	for i, p := range profiles {
		t.addRow(strconv.Itoa(i+1), p.Name, p.URL)
	}
	return t.render()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
