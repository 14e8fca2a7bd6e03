package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/internal/config"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/internal/state"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/scrape"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var (
		pages    int
		delay    time.Duration
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "scrape <query>...",
		Short: "Collect LinkedIn profile links from search result pages",
		Long: `scrape searches for "site:linkedin.com/in <query>", walks up to --pages
result pages and stores every profile link it finds. Use "xray profiles" to
list or export what has been collected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			maxPages := cfg.Scrape.MaxPages
			if cmd.Flags().Changed("pages") {
				maxPages = pages
			}
			if maxPages < 1 {
				return fmt.Errorf("invalid page count: %d (must be >= 1)", maxPages)
			}
			pageDelay := cfg.PageDelay()
			if cmd.Flags().Changed("delay") {
				pageDelay = delay
			}
			chrome := scrape.ChromeOptions{
				Headless:  cfg.Scrape.Headless,
				ExecPath:  cfg.Scrape.ChromePath,
				UserAgent: cfg.Scrape.UserAgent,
			}
			if cmd.Flags().Changed("headless") {
				chrome.Headless = headless
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

			sessionID := uuid.NewString()
			out := cmd.OutOrStdout()
			status, logger, err := ctx.statusLog(out, "scrape", sessionID)
			if err != nil {
				return err
			}

			unsubscribe := store.OnChange(func(c state.Change) {
				logger.Debug("state changed", "key", c.Key, "bytes", len(c.Value))
			})
			defer unsubscribe()

			runCtx, cancel := context.WithTimeout(cmd.Context(), cfg.ScrapeTimeout())
			defer cancel()

			page, err := scrape.NewChromePage(runCtx, chrome)
			if err != nil {
				return err
			}
			defer page.Close()

			query := strings.Join(args, " ")
			logger.Info("scrape started", "query", query, "max_pages", maxPages, "headless", chrome.Headless)

			scraper := &scrape.Scraper{
				Page:      page,
				Store:     store,
				Reporter:  status,
				SearchURL: cfg.Scrape.SearchURL,
				MaxPages:  maxPages,
				Delay:     pageDelay,
			}
			res, err := scraper.Run(runCtx, query)
			if err != nil {
				logger.Error("scrape failed", "error", err, "pages", res.Pages)
				return err
			}
			logger.Info("scrape finished", "pages", res.Pages, "found", res.Found, "added", res.Added, "total", res.Total)

			fmt.Fprintf(out, "Collected %d new profiles from %d page(s); %d stored in total.\n", res.Added, res.Pages, res.Total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "n", 1, "Maximum number of result pages to scrape (default from config)")
	cmd.Flags().DurationVar(&delay, "delay", 3*time.Second, "Pause before loading the next page (default from config)")
	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser without a window (default from config)")
	return cmd
}

// acquireScrapeLock ensures only one scrape session writes to the state
// database at a time.
func acquireScrapeLock(cfg *config.Config) (func(), error) {
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire scrape lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another scrape session is running (lock %s)", cfg.LockPath())
	}
	return func() {
		_ = lock.Unlock()
	}, nil
}
