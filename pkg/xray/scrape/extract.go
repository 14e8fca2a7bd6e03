// Package scrape collects LinkedIn profile links from paginated search
// result pages.
package scrape

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/linkedin"
	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

const (
	resultSelector = "div.g"
	titleSelector  = "h3"
	linkSelector   = `a[href*="linkedin.com/in/"]`
)

// SiteFilter restricts a search to LinkedIn profile pages.
const SiteFilter = "site:linkedin.com/in"

// BuildSearchURL returns the results URL for query on the search engine at
// base.
func BuildSearchURL(base, query string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse search url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("search url must be absolute: %q", base)
	}
	q := u.Query()
	q.Set("q", strings.TrimSpace(SiteFilter+" "+strings.TrimSpace(query)))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExtractProfiles returns one profile per search result that has both a
// title and a LinkedIn profile link, in page order. Relative links are
// resolved against pageURL and search engine redirect links are unwrapped.
func ExtractProfiles(html, pageURL string) ([]models.Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}
	base, _ := url.Parse(pageURL)

	var profiles []models.Profile
	doc.Find(resultSelector).Each(func(_ int, s *goquery.Selection) {
		h3 := s.Find(titleSelector).First()
		link := s.Find(linkSelector).First()
		if h3.Length() == 0 || link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		target := resolveLink(base, href)
		if !strings.Contains(target, linkedin.URLMarker) {
			return
		}
		profiles = append(profiles, models.Profile{
			Name: strings.TrimSpace(h3.Text()),
			URL:  target,
		})
	})
	return profiles, nil
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	// Google wraps outbound links as /url?q=<target>.
	if ref.Path == "/url" {
		for _, key := range []string{"q", "url"} {
			if target := ref.Query().Get(key); target != "" {
				return target
			}
		}
	}
	return ref.String()
}
