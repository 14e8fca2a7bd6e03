package scrape

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

// ErrEmptyQuery indicates a scrape was started without search terms.
var ErrEmptyQuery = errors.New("search query is empty")

// Store persists the session and the collected profiles.
type Store interface {
	StartSession(ctx context.Context, maxPages int) error
	SetCurrentPage(ctx context.Context, page int) error
	StopSession(ctx context.Context) error
	MergeProfiles(ctx context.Context, profiles []models.Profile) (total int, added int, err error)
}

// Scraper walks result pages and merges every profile it finds into Store.
type Scraper struct {
	Page      Page
	Store     Store
	Reporter  xray.Reporter
	SearchURL string
	MaxPages  int
	Delay     time.Duration
}

// Result summarizes one session.
type Result struct {
	// Pages is the number of result pages scraped.
	Pages int `json:"pages"`
	// Found counts profiles extracted across all pages, repeats included.
	Found int `json:"found"`
	// Added counts profiles that were new to the store.
	Added int `json:"added"`
	// Total is the store size after the session.
	Total int `json:"total"`
	// Exhausted reports that results ran out before MaxPages.
	Exhausted bool `json:"exhausted"`
}

// Run scrapes up to MaxPages result pages for query. The session is marked
// inactive when Run returns, whatever the outcome.
func (s *Scraper) Run(ctx context.Context, query string) (res Result, err error) {
	if strings.TrimSpace(query) == "" {
		return res, ErrEmptyQuery
	}
	rep := s.Reporter
	if rep == nil {
		rep = xray.Discard
	}
	maxPages := s.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}

	searchURL, err := BuildSearchURL(s.SearchURL, query)
	if err != nil {
		return res, err
	}

	if err := s.Store.StartSession(ctx, maxPages); err != nil {
		return res, fmt.Errorf("start session: %w", err)
	}
	defer func() {
		if stopErr := s.Store.StopSession(context.WithoutCancel(ctx)); stopErr != nil && err == nil {
			err = fmt.Errorf("stop session: %w", stopErr)
		}
	}()

	rep.Emit(xray.LevelInfo, "Initializing scraper...")
	if err := s.Page.Navigate(ctx, searchURL); err != nil {
		rep.Emit(xray.LevelError, fmt.Sprintf("Error: %v", err))
		return res, err
	}

	for current := 1; ; current++ {
		html, err := s.Page.HTML(ctx)
		if err != nil {
			rep.Emit(xray.LevelError, fmt.Sprintf("Error: %v", err))
			return res, err
		}
		found, err := ExtractProfiles(html, searchURL)
		if err != nil {
			return res, err
		}
		total, added, err := s.Store.MergeProfiles(ctx, found)
		if err != nil {
			return res, fmt.Errorf("save profiles: %w", err)
		}
		res.Pages = current
		res.Found += len(found)
		res.Added += added
		res.Total = total
		rep.Emit(xray.LevelInfo, fmt.Sprintf("Found %d profiles", total))

		if current >= maxPages {
			rep.Emit(xray.LevelSuccess, "Scraping complete!")
			return res, nil
		}

		if err := sleep(ctx, s.delay()); err != nil {
			return res, err
		}

		hasNext, err := s.Page.HasNextPage(ctx)
		if err != nil {
			return res, err
		}
		if !hasNext {
			res.Exhausted = true
			rep.Emit(xray.LevelSuccess, "No more pages")
			return res, nil
		}
		if err := s.Store.SetCurrentPage(ctx, current+1); err != nil {
			return res, fmt.Errorf("save page: %w", err)
		}
		rep.Emit(xray.LevelInfo, fmt.Sprintf("Loading page %d...", current+1))
		if err := s.Page.NextPage(ctx); err != nil {
			rep.Emit(xray.LevelError, fmt.Sprintf("Error: %v", err))
			return res, err
		}
	}
}

func (s *Scraper) delay() time.Duration {
	if s.Delay < 0 {
		return 0
	}
	return s.Delay
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
