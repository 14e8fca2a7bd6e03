// Package state persists scrape session state and collected profiles in a
// small SQLite key-value table and notifies subscribers of every change.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Keys stored by the scraper.
const (
	KeyActive      = "isScrapingActive"
	KeyCurrentPage = "currentPage"
	KeyMaxPages    = "maxPages"
	KeyProfiles    = "profiles"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Change describes one committed write. Value is nil when the key was removed.
type Change struct {
	Key   string
	Value json.RawMessage
}

// Store is a key-value store with JSON values backed by SQLite.
type Store struct {
	db   *sql.DB
	path string

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(Change)
}

type entry struct {
	key   string
	value any
}

// Open initializes or connects to the state database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at TEXT NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &Store{db: db, path: path, listeners: make(map[int]func(Change))}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OnChange registers fn to be called after each committed write, once per
// changed key, in write order. The returned function removes the subscription.
func (s *Store) OnChange(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Get decodes the value stored under key into dst and reports whether the key
// exists.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	return get(ctx, s.db, key, dst)
}

// Session returns the persisted session. Missing page counters read as 1.
func (s *Store) Session(ctx context.Context) (Session, error) {
	sess := Session{CurrentPage: 1, MaxPages: 1}
	if _, err := s.Get(ctx, KeyActive, &sess.Active); err != nil {
		return Session{}, err
	}
	if _, err := s.Get(ctx, KeyCurrentPage, &sess.CurrentPage); err != nil {
		return Session{}, err
	}
	if _, err := s.Get(ctx, KeyMaxPages, &sess.MaxPages); err != nil {
		return Session{}, err
	}
	if sess.CurrentPage < 1 {
		sess.CurrentPage = 1
	}
	if sess.MaxPages < 1 {
		sess.MaxPages = 1
	}
	return sess, nil
}

// StartSession marks a scrape active on page 1 of maxPages.
func (s *Store) StartSession(ctx context.Context, maxPages int) error {
	if maxPages < 1 {
		return fmt.Errorf("max pages must be >= 1, got %d", maxPages)
	}
	return s.put(ctx,
		entry{KeyActive, true},
		entry{KeyCurrentPage, 1},
		entry{KeyMaxPages, maxPages},
	)
}

// SetCurrentPage records the page about to be scraped.
func (s *Store) SetCurrentPage(ctx context.Context, page int) error {
	return s.put(ctx, entry{KeyCurrentPage, page})
}

// StopSession marks the scrape inactive.
func (s *Store) StopSession(ctx context.Context) error {
	return s.put(ctx, entry{KeyActive, false})
}

// Profiles returns every collected profile in collection order.
func (s *Store) Profiles(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	if _, err := s.Get(ctx, KeyProfiles, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// MergeProfiles appends the profiles whose URL is not stored yet and returns
// the new total and how many were added. Stored profiles keep their order.
func (s *Store) MergeProfiles(ctx context.Context, incoming []Profile) (int, int, error) {
	var merged []Profile
	added := 0
	var raw json.RawMessage

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin merge tx: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()

		var existing []Profile
		if _, err := get(ctx, tx, KeyProfiles, &existing); err != nil {
			return err
		}

		seen := make(map[string]struct{}, len(existing)+len(incoming))
		for _, p := range existing {
			seen[p.URL] = struct{}{}
		}
		merged = existing
		added = 0
		for _, p := range incoming {
			if _, ok := seen[p.URL]; ok {
				continue
			}
			seen[p.URL] = struct{}{}
			merged = append(merged, p)
			added++
		}
		if merged == nil {
			merged = []Profile{}
		}

		raw, err = json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encode profiles: %w", err)
		}
		if err := upsert(ctx, tx, KeyProfiles, raw); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit merge: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.notify(Change{Key: KeyProfiles, Value: raw})
	return len(merged), added, nil
}

// Clear removes every collected profile.
func (s *Store) Clear(ctx context.Context) error {
	err := retryOnBusy(ctx, func() error {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", KeyProfiles); err != nil {
			return fmt.Errorf("clear profiles: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(Change{Key: KeyProfiles})
	return nil
}

func (s *Store) put(ctx context.Context, entries ...entry) error {
	changes := make([]Change, 0, len(entries))
	for _, e := range entries {
		raw, err := json.Marshal(e.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", e.key, err)
		}
		changes = append(changes, Change{Key: e.key, Value: raw})
	}

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()
		for _, c := range changes {
			if err := upsert(ctx, tx, c.Key, c.Value); err != nil {
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, c := range changes {
		s.notify(c)
	}
	return nil
}

func (s *Store) notify(c Change) {
	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func get(ctx context.Context, q querier, key string, dst any) (bool, error) {
	var raw string
	err := q.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func upsert(ctx context.Context, tx *sql.Tx, key string, value []byte) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		string(value),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
