package models

// Profile is a search result scraped from a results page.
type Profile struct {
	// Name is the result title, usually the person's name and headline.
	Name string `json:"name"`
	// URL is the LinkedIn profile link as found on the page.
	URL string `json:"url"`
}

// Session is the persisted state of a scrape run.
type Session struct {
	// Active reports whether a scrape is in progress.
	Active bool `json:"isScrapingActive"`
	// CurrentPage is the 1-based results page being scraped.
	CurrentPage int `json:"currentPage"`
	// MaxPages is the page limit for the run.
	MaxPages int `json:"maxPages"`
}

// ProfileRows converts profiles into rows with "name" and "url" columns, the
// shape the export writer and the dedupe pipeline consume.
func ProfileRows(profiles []Profile) []Row {
	columns := []string{"name", "url"}
	rows := make([]Row, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, NewRow(columns, []string{p.Name, p.URL}))
	}
	return rows
}
