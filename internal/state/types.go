package state

import "github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"

// Session is the persisted scrape session.
type Session = models.Session

// Profile is one collected search result.
type Profile = models.Profile
