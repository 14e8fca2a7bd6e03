package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	StateDB   string `toml:"state_db"`
}

// Dedupe contains configuration for the deduplication run and its export.
type Dedupe struct {
	SampleRows     int    `toml:"sample_rows"`
	ExportFormat   string `toml:"export_format"`
	SheetName      string `toml:"sheet_name"`
	FilenamePrefix string `toml:"filename_prefix"`
}

// Scrape contains configuration for the search results scraper.
type Scrape struct {
	MaxPages         int    `toml:"max_pages"`
	PageDelaySeconds int    `toml:"page_delay_seconds"`
	Headless         bool   `toml:"headless"`
	ChromePath       string `toml:"chrome_path"`
	UserAgent        string `toml:"user_agent"`
	SearchURL        string `toml:"search_url"`
	TimeoutMinutes   int    `toml:"timeout_minutes"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for xray.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Dedupe  Dedupe  `toml:"dedupe"`
	Scrape  Scrape  `toml:"scrape"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/xray/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("xray.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// LockPath returns the file guarding the scrape session.
func (c *Config) LockPath() string {
	return c.Paths.StateDB + ".lock"
}

// PageDelay returns the pause between results pages.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.Scrape.PageDelaySeconds) * time.Second
}

// ScrapeTimeout returns the upper bound for one scrape session.
func (c *Config) ScrapeTimeout() time.Duration {
	return time.Duration(c.Scrape.TimeoutMinutes) * time.Minute
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleOptions fills machine specific values into the sample file.
type SampleOptions struct {
	// ChromePath is written as scrape.chrome_path when set.
	ChromePath string
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string, opts SampleOptions) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	contents := sampleConfig
	if chrome := strings.TrimSpace(opts.ChromePath); chrome != "" {
		contents = strings.Replace(contents, `chrome_path = ""`, "chrome_path = "+strconv.Quote(chrome), 1)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
