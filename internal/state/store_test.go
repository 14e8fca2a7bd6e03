package state_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/internal/state"
)

func mustOpen(t *testing.T) *state.Store {
	t.Helper()
	store, err := state.Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSessionDefaultsWhenEmpty(t *testing.T) {
	store := mustOpen(t)
	sess, err := store.Session(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	want := state.Session{Active: false, CurrentPage: 1, MaxPages: 1}
	if sess != want {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	if err := store.StartSession(ctx, 3); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := store.SetCurrentPage(ctx, 2); err != nil {
		t.Fatalf("SetCurrentPage failed: %v", err)
	}
	sess, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if sess != (state.Session{Active: true, CurrentPage: 2, MaxPages: 3}) {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if err := store.StopSession(ctx); err != nil {
		t.Fatalf("StopSession failed: %v", err)
	}
	sess, err = store.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if sess.Active {
		t.Fatal("expected session to be inactive")
	}

	if err := store.StartSession(ctx, 0); err == nil {
		t.Fatal("expected error for zero max pages")
	}
}

func TestMergeProfilesDeduplicatesByURL(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	first := []state.Profile{
		{Name: "Alice", URL: "https://www.linkedin.com/in/alice"},
		{Name: "Bob", URL: "https://www.linkedin.com/in/bob"},
	}
	total, added, err := store.MergeProfiles(ctx, first)
	if err != nil {
		t.Fatalf("MergeProfiles failed: %v", err)
	}
	if total != 2 || added != 2 {
		t.Fatalf("unexpected counts total=%d added=%d", total, added)
	}

	second := []state.Profile{
		{Name: "Alice again", URL: "https://www.linkedin.com/in/alice"},
		{Name: "Carol", URL: "https://www.linkedin.com/in/carol"},
		{Name: "Carol dup", URL: "https://www.linkedin.com/in/carol"},
	}
	total, added, err = store.MergeProfiles(ctx, second)
	if err != nil {
		t.Fatalf("MergeProfiles failed: %v", err)
	}
	if total != 3 || added != 1 {
		t.Fatalf("unexpected counts total=%d added=%d", total, added)
	}

	got, err := store.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	want := []state.Profile{first[0], first[1], second[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestClearRemovesProfiles(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	if _, _, err := store.MergeProfiles(ctx, []state.Profile{{Name: "A", URL: "u"}}); err != nil {
		t.Fatalf("MergeProfiles failed: %v", err)
	}
	if err := store.StartSession(ctx, 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	got, err := store.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no profiles, got %v", got)
	}
	sess, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if sess.MaxPages != 2 {
		t.Fatalf("expected session to survive clear, got %+v", sess)
	}
}

func TestOnChangeFiresAfterCommit(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	var mu sync.Mutex
	var keys []string
	var lastProfiles int
	unsubscribe := store.OnChange(func(c state.Change) {
		mu.Lock()
		defer mu.Unlock()
		keys = append(keys, c.Key)
		if c.Key == state.KeyProfiles && c.Value != nil {
			var ps []state.Profile
			if err := json.Unmarshal(c.Value, &ps); err != nil {
				t.Errorf("decode change: %v", err)
			}
			lastProfiles = len(ps)
			// Committed before notification.
			stored, err := store.Profiles(ctx)
			if err != nil || len(stored) != len(ps) {
				t.Errorf("change delivered before commit: stored=%d err=%v", len(stored), err)
			}
		}
	})

	if err := store.StartSession(ctx, 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, _, err := store.MergeProfiles(ctx, []state.Profile{{Name: "A", URL: "a"}, {Name: "B", URL: "b"}}); err != nil {
		t.Fatalf("MergeProfiles failed: %v", err)
	}

	unsubscribe()
	if err := store.StopSession(ctx); err != nil {
		t.Fatalf("StopSession failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{state.KeyActive, state.KeyCurrentPage, state.KeyMaxPages, state.KeyProfiles}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("change keys mismatch (-want +got):\n%s", diff)
	}
	if lastProfiles != 2 {
		t.Fatalf("expected 2 profiles in change, got %d", lastProfiles)
	}
}

func TestStatePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store, err := state.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, _, err := store.MergeProfiles(ctx, []state.Profile{{Name: "A", URL: "a"}}); err != nil {
		t.Fatalf("MergeProfiles failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := state.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if len(got) != 1 || got[0].URL != "a" {
		t.Fatalf("unexpected profiles after reopen: %v", got)
	}
}

func TestGetDecodesStoredValues(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	if err := store.StartSession(ctx, 4); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	var maxPages int
	ok, err := store.Get(ctx, state.KeyMaxPages, &maxPages)
	if err != nil || !ok || maxPages != 4 {
		t.Fatalf("unexpected Get result: %d ok=%v err=%v", maxPages, ok, err)
	}
	var missing []string
	ok, err = store.Get(ctx, state.KeyProfiles, &missing)
	if err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
}
