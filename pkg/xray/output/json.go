// Package output serializes run results for machine consumers.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

// ToJSON serializes run statistics to JSON.
func ToJSON(stats *models.RunStats, pretty bool) ([]byte, error) {
	if stats == nil {
		return nil, fmt.Errorf("nil run stats")
	}
	if pretty {
		return json.MarshalIndent(stats, "", "  ")
	}
	return json.Marshal(stats)
}

// ProfilesToJSON serializes scraped profiles to JSON. A nil slice encodes as [].
func ProfilesToJSON(profiles []models.Profile, pretty bool) ([]byte, error) {
	if profiles == nil {
		profiles = []models.Profile{}
	}
	if pretty {
		return json.MarshalIndent(profiles, "", "  ")
	}
	return json.Marshal(profiles)
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
