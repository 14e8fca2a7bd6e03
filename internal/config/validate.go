package config

import (
	"errors"
	"fmt"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/export"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDedupe(); err != nil {
		return err
	}
	if err := c.validateScrape(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDedupe() error {
	if c.Dedupe.SampleRows < 1 {
		return errors.New("dedupe.sample_rows must be >= 1")
	}
	switch c.Dedupe.ExportFormat {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("dedupe.export_format must be xlsx or csv, got %q", c.Dedupe.ExportFormat)
	}
	if err := export.CheckSheetName(c.Dedupe.SheetName); err != nil {
		return fmt.Errorf("dedupe.sheet_name: %w", err)
	}
	if err := export.CheckPrefix(c.Dedupe.FilenamePrefix); err != nil {
		return fmt.Errorf("dedupe.filename_prefix: %w", err)
	}
	return nil
}

func (c *Config) validateScrape() error {
	if c.Scrape.MaxPages < 1 {
		return errors.New("scrape.max_pages must be >= 1")
	}
	if c.Scrape.PageDelaySeconds < 0 {
		return errors.New("scrape.page_delay_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
