package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDedupe()
	c.normalizeScrape()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDB) == "" {
		c.Paths.StateDB = defaultStateDB
	}
	if c.Paths.StateDB, err = expandPath(c.Paths.StateDB); err != nil {
		return fmt.Errorf("paths.state_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeDedupe() {
	c.Dedupe.ExportFormat = strings.ToLower(strings.TrimSpace(c.Dedupe.ExportFormat))
	if c.Dedupe.ExportFormat == "" {
		c.Dedupe.ExportFormat = defaultExportFormat
	}
	c.Dedupe.SheetName = strings.TrimSpace(c.Dedupe.SheetName)
	if c.Dedupe.SheetName == "" {
		c.Dedupe.SheetName = defaultSheetName
	}
	c.Dedupe.FilenamePrefix = strings.TrimSpace(c.Dedupe.FilenamePrefix)
	if c.Dedupe.FilenamePrefix == "" {
		c.Dedupe.FilenamePrefix = defaultFilenamePrefix
	}
}

func (c *Config) normalizeScrape() {
	c.Scrape.ChromePath = strings.TrimSpace(c.Scrape.ChromePath)
	if c.Scrape.ChromePath == "" {
		if value, ok := os.LookupEnv("XRAY_CHROME_PATH"); ok {
			c.Scrape.ChromePath = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("CHROME_PATH"); ok {
			c.Scrape.ChromePath = strings.TrimSpace(value)
		}
	}
	c.Scrape.SearchURL = strings.TrimSpace(c.Scrape.SearchURL)
	if c.Scrape.SearchURL == "" {
		c.Scrape.SearchURL = defaultSearchURL
	}
	c.Scrape.UserAgent = strings.TrimSpace(c.Scrape.UserAgent)
	if c.Scrape.TimeoutMinutes <= 0 {
		c.Scrape.TimeoutMinutes = defaultTimeoutMinutes
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = defaultLogFile
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
