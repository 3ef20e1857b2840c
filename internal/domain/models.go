package domain

import "time"

// Domain contains core models shared by readers, the detector and notifiers.

// Item is a single announcement extracted from a monitored page.
// URL is the identity key; Title is display-only.
type Item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Notification is the aggregated payload emitted for one site's new items.
type Notification struct {
	SiteName   string    `json:"site_name"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Items      []Item    `json:"items"`
	DetectedAt time.Time `json:"detected_at"`
}
