package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

func TestToJSON(t *testing.T) {
	stats := &models.RunStats{RunID: "r1", MasterFile: "master.xlsx", MasterIDs: 2}
	stats.AddFile(models.FileStats{Name: "a.csv", Rows: 3, URLColumn: "link", Unique: 1, Duplicates: 1})
	stats.AddFile(models.FileStats{Name: "b.csv", Rows: 2, Skipped: true})

	data, err := ToJSON(stats, false)
	if err != nil {
		t.Fatalf("ToJSON returned error: %v", err)
	}
	if strings.Contains(string(data), "\n") {
		t.Error("expected compact output")
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["run_id"] != "r1" || decoded["total_records"] != float64(5) {
		t.Errorf("unexpected report: %v", decoded)
	}
	if _, ok := decoded["export_path"]; ok {
		t.Error("expected export_path to be omitted when empty")
	}
	files, ok := decoded["files"].([]any)
	if !ok || len(files) != 2 {
		t.Fatalf("unexpected files: %v", decoded["files"])
	}
	if skipped := files[1].(map[string]any)["skipped"]; skipped != true {
		t.Errorf("expected b.csv to be marked skipped, got %v", skipped)
	}

	pretty, err := ToJSON(stats, true)
	if err != nil {
		t.Fatalf("ToJSON returned error: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"run_id\": \"r1\"") {
		t.Errorf("expected indented output, got %s", pretty)
	}

	if _, err := ToJSON(nil, false); err == nil {
		t.Error("expected error for nil stats")
	}
}

func TestProfilesToJSON(t *testing.T) {
	data, err := ProfilesToJSON(nil, false)
	if err != nil {
		t.Fatalf("ProfilesToJSON returned error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty array, got %s", data)
	}

	in := []models.Profile{{Name: "Alice", URL: "https://www.linkedin.com/in/alice"}}
	data, err = ProfilesToJSON(in, true)
	if err != nil {
		t.Fatalf("ProfilesToJSON returned error: %v", err)
	}
	var out []models.Profile
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.json")
	if err := WriteFile(path, []byte("{}")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("unexpected contents %q", got)
	}
}
