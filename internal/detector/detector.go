// Package detector decides which announcements of a site are new relative to
// the site's persisted history and builds the aggregated notification for them.
package detector

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
)

const itemSeparator = "\n\n---\n\n"

// Result is the outcome of comparing one fetch against the prior URL set.
type Result struct {
	SiteName string
	// NewItems holds the items whose URL was absent from the prior set, in fetch order.
	NewItems []domain.Item
	// UpdatedURLs is the full URL set of the latest fetch, or nil when nothing is new.
	UpdatedURLs []string
}

// Changed reports whether the fetch contained at least one unseen URL.
func (r Result) Changed() bool {
	return len(r.NewItems) > 0
}

// Detect compares fetched against prior. The caller must not pass an empty
// fetch: an empty result means the site could not be read and history stays as is.
func Detect(siteName string, fetched []domain.Item, prior []string) Result {
	res := Result{SiteName: siteName}

	seen := make(map[string]struct{}, len(prior))
	for _, u := range prior {
		seen[u] = struct{}{}
	}

	latest := make([]string, 0, len(fetched))
	inLatest := make(map[string]struct{}, len(fetched))
	var fresh []domain.Item

	for _, item := range fetched {
		if _, dup := inLatest[item.URL]; dup {
			continue
		}
		inLatest[item.URL] = struct{}{}
		latest = append(latest, item.URL)

		if _, old := seen[item.URL]; !old {
			fresh = append(fresh, item)
		}
	}

	if len(fresh) == 0 {
		return res
	}

	res.NewItems = fresh
	res.UpdatedURLs = latest
	return res
}

// Notification renders the aggregated payload for the new items.
func (r Result) Notification() domain.Notification {
	parts := make([]string, 0, len(r.NewItems))
	for _, item := range r.NewItems {
		parts = append(parts, FormatItem(item))
	}

	items := make([]domain.Item, len(r.NewItems))
	copy(items, r.NewItems)

	return domain.Notification{
		SiteName:   r.SiteName,
		Title:      Title(r.SiteName, len(r.NewItems)),
		Body:       strings.Join(parts, itemSeparator),
		Items:      items,
		DetectedAt: time.Now().UTC(),
	}
}

// Title returns the notification headline for count new items of a site.
func Title(siteName string, count int) string {
	return fmt.Sprintf("【%s】%d new announcement(s) found", siteName, count)
}

// FormatItem renders one item as a body block.
func FormatItem(item domain.Item) string {
	return fmt.Sprintf("Title: %s\nURL: %s", item.Title, item.URL)
}
