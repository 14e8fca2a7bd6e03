package dedupe

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/linkedin"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

func linkRows(column string, values ...string) []models.Row {
	rows := make([]models.Row, 0, len(values))
	for i, v := range values {
		rows = append(rows, models.NewRow([]string{"#", column}, []string{string(rune('a' + i)), v}))
	}
	return rows
}

func rowValues(rows []models.Row, column string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Value(column))
	}
	return out
}

func TestFilterClassifiesAgainstMaster(t *testing.T) {
	master := NewIDSet("alice", "bob")
	rows := linkRows("Profile",
		"https://www.linkedin.com/in/alice",
		"https://www.linkedin.com/in/carol/",
		"not a profile",
		"linkedin.com/in/BOB?trk=x",
		"https://in.linkedin.com/in/carol#top",
	)

	res := New(0).Filter(rows, master)

	if res.Skipped {
		t.Fatal("expected file not to be skipped")
	}
	if res.Column != "Profile" {
		t.Errorf("Column = %q, expected %q", res.Column, "Profile")
	}
	if res.Unique != 2 {
		t.Errorf("Unique = %d, expected 2", res.Unique)
	}
	if res.Duplicates != 2 {
		t.Errorf("Duplicates = %d, expected 2", res.Duplicates)
	}
	want := []string{"https://www.linkedin.com/in/carol/", "https://in.linkedin.com/in/carol#top"}
	if diff := cmp.Diff(want, rowValues(res.Rows, "Profile")); diff != "" {
		t.Errorf("unique rows mismatch (-want +got):\n%s", diff)
	}
	if res.Rows[0].Value("#") != "b" || res.Rows[1].Value("#") != "e" {
		t.Errorf("unique rows not passed through unchanged: %v", res.Rows)
	}
}

func TestFilterRowsWithoutIDAreNotCounted(t *testing.T) {
	rows := linkRows("url",
		"https://www.linkedin.com/in/dave",
		"https://www.linkedin.com/in/",
		"https://www.linkedin.com/company/acme",
		"",
	)

	res := New(0).Filter(rows, NewIDSet())

	if res.Unique != 1 || res.Duplicates != 0 {
		t.Errorf("got unique=%d duplicates=%d, expected 1 and 0", res.Unique, res.Duplicates)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 exported row, got %d", len(res.Rows))
	}
}

func TestFilterSkipsDatasetWithoutURLColumn(t *testing.T) {
	rows := make([]models.Row, 0, 12)
	for i := 0; i < 10; i++ {
		rows = append(rows, models.RowFromPairs("url", ""))
	}
	// Past the detection sample: never seen, so the file is skipped.
	rows = append(rows, models.RowFromPairs("url", "https://www.linkedin.com/in/erin"))

	res := New(0).Filter(rows, NewIDSet())

	if !res.Skipped {
		t.Fatal("expected dataset to be skipped")
	}
	if res.Unique != 0 || res.Duplicates != 0 || len(res.Rows) != 0 {
		t.Errorf("skipped dataset produced output: %+v", res)
	}
}

func TestFilterUsesDetectedColumnOnly(t *testing.T) {
	rows := []models.Row{
		models.RowFromPairs("a", "https://www.linkedin.com/in/first", "b", ""),
		models.RowFromPairs("a", "", "b", "https://www.linkedin.com/in/second"),
	}

	res := New(0).Filter(rows, NewIDSet())

	if res.Column != "a" {
		t.Fatalf("Column = %q, expected %q", res.Column, "a")
	}
	if res.Unique != 1 {
		t.Errorf("Unique = %d, expected 1", res.Unique)
	}
}

func TestFilterDoesNotDeduplicateAcrossFiles(t *testing.T) {
	engine := New(0)
	master := engine.Build(linkRows("url", "https://www.linkedin.com/in/alice")).Set

	first := engine.Filter(linkRows("link", "https://www.linkedin.com/in/zoe"), master)
	second := engine.Filter(linkRows("Profile Link", "linkedin.com/in/ZOE/"), master)

	if first.Unique != 1 || second.Unique != 1 {
		t.Fatalf("expected zoe to be unique in both files, got %d and %d", first.Unique, second.Unique)
	}
	if master.Has("zoe") {
		t.Error("filter must not add IDs to the master set")
	}
	if master.Len() != 1 {
		t.Errorf("master set size = %d, expected 1", master.Len())
	}
}

func TestFilterIsDeterministic(t *testing.T) {
	engine := New(0)
	master := NewIDSet("alice")
	rows := linkRows("url",
		"https://www.linkedin.com/in/alice",
		"https://www.linkedin.com/in/bob",
		"junk",
	)

	first := engine.Filter(rows, master)
	second := engine.Filter(rows, master)

	if diff := cmp.Diff(rowValues(first.Rows, "url"), rowValues(second.Rows, "url")); diff != "" {
		t.Errorf("repeated filter differs (-first +second):\n%s", diff)
	}
	if first.Unique != second.Unique || first.Duplicates != second.Duplicates {
		t.Errorf("counts differ: %+v vs %+v", first, second)
	}
	if master.Len() != 1 {
		t.Errorf("master set size = %d, expected 1", master.Len())
	}
}

func TestBuildWithDetectedColumn(t *testing.T) {
	rows := linkRows("Person Linkedin Url",
		"https://www.linkedin.com/in/alice",
		"https://uk.linkedin.com/in/Alice/",
		"",
		"https://www.linkedin.com/in/bob?x=1",
	)

	res := New(0).Build(rows)

	if res.Fallback {
		t.Error("expected dataset-level detection to succeed")
	}
	if res.Column != "Person Linkedin Url" {
		t.Errorf("Column = %q", res.Column)
	}
	if res.Matched != 3 {
		t.Errorf("Matched = %d, expected 3", res.Matched)
	}
	if res.Set.Len() != 2 || !res.Set.Has("alice") || !res.Set.Has("bob") {
		t.Errorf("unexpected set contents, len=%d", res.Set.Len())
	}
}

func TestBuildFallsBackToPerRowDetection(t *testing.T) {
	rows := make([]models.Row, 0, 12)
	for i := 0; i < 10; i++ {
		rows = append(rows, models.RowFromPairs("x", "", "y", ""))
	}
	rows = append(rows,
		models.RowFromPairs("x", "https://www.linkedin.com/in/late-one", "y", ""),
		models.RowFromPairs("x", "", "y", "linkedin.com/in/late-two"),
	)

	res := New(0).Build(rows)

	if !res.Fallback {
		t.Fatal("expected per-row fallback")
	}
	if res.Column != "" {
		t.Errorf("Column = %q, expected empty", res.Column)
	}
	for _, id := range []linkedin.ID{"late-one", "late-two"} {
		if !res.Set.Has(id) {
			t.Errorf("expected %q in master set", id)
		}
	}
	if res.Matched != 2 {
		t.Errorf("Matched = %d, expected 2", res.Matched)
	}
}
