package scrape

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Page is the browser tab the scraper drives.
type Page interface {
	// Navigate loads url and waits for the document.
	Navigate(ctx context.Context, url string) error
	// HTML returns the rendered document.
	HTML(ctx context.Context) (string, error)
	// HasNextPage reports whether an enabled "next" control is present.
	HasNextPage(ctx context.Context) (bool, error)
	// NextPage activates the "next" control and waits for the new page.
	NextPage(ctx context.Context) error
}

const nextControlID = "pnnext"

// ChromeOptions configures the browser behind a ChromePage.
type ChromeOptions struct {
	Headless  bool
	ExecPath  string
	UserAgent string
}

// ChromePage drives a Chrome tab through the DevTools protocol.
type ChromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewChromePage starts a browser bound to parent. Close releases it.
func NewChromePage(parent context.Context, opts ChromeOptions) (*ChromePage, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	bctx, bcancel := chromedp.NewContext(allocCtx)

	page := &ChromePage{
		ctx: bctx,
		cancel: func() {
			bcancel()
			allocCancel()
		},
	}
	if err := chromedp.Run(bctx, chromedp.Navigate("about:blank")); err != nil {
		page.cancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return page, nil
}

// Close shuts the browser down.
func (p *ChromePage) Close() {
	p.cancel()
}

func (p *ChromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, p.cancel)
	defer stop()
	return chromedp.Run(p.ctx, actions...)
}

// Navigate loads url.
func (p *ChromePage) Navigate(ctx context.Context, url string) error {
	if err := p.run(ctx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	return nil
}

// HTML returns the outer HTML of the document element.
func (p *ChromePage) HTML(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	return html, nil
}

// HasNextPage looks for an enabled #pnnext control.
func (p *ChromePage) HasNextPage(ctx context.Context) (bool, error) {
	js := fmt.Sprintf(`(() => {
        const b = document.getElementById(%q);
        return !!b && !b.disabled;
    })()`, nextControlID)
	var ok bool
	if err := p.run(ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return false, fmt.Errorf("find next control: %w", err)
	}
	return ok, nil
}

// NextPage follows the #pnnext link, or clicks it when it has none.
func (p *ChromePage) NextPage(ctx context.Context) error {
	js := fmt.Sprintf(`(() => {
        const b = document.getElementById(%q);
        return b && b.href ? b.href : "";
    })()`, nextControlID)
	var href string
	if err := p.run(ctx, chromedp.Evaluate(js, &href)); err != nil {
		return fmt.Errorf("read next control: %w", err)
	}
	if href != "" {
		return p.Navigate(ctx, href)
	}
	if err := p.run(ctx,
		chromedp.Click("#"+nextControlID, chromedp.ByQuery, chromedp.NodeVisible),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("click next control: %w", err)
	}
	return nil
}
