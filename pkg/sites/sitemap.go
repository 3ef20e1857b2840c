package sites

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
)

// sitemapExtractor reads items from an XML sitemap, optionally carrying
// Google News titles.
type sitemapExtractor struct{}

// NewSitemapExtractor builds the sitemap strategy.
func NewSitemapExtractor() Extractor { return sitemapExtractor{} }

func (sitemapExtractor) Type() string { return TypeSitemap }

type urlSet struct {
	URLs []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc       string `xml:"loc"`
	NewsTitle string `xml:"news>title"`
}

func parseSitemap(data []byte) ([]sitemapURL, error) {
	var set urlSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return set.URLs, nil
}

// Extract keeps sitemap order; entries without a title use their URL as title.
func (sitemapExtractor) Extract(doc []byte, site Site, limit int) ([]domain.Item, error) {
	entries, err := parseSitemap(doc)
	if err != nil {
		return nil, fmt.Errorf("decode sitemap: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	base := site.LinkBase()
	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		loc := strings.TrimSpace(entry.Loc)
		if loc == "" {
			continue
		}
		loc = resolveURL(loc, base)
		title := strings.TrimSpace(entry.NewsTitle)
		if title == "" {
			title = loc
		}
		items = append(items, domain.Item{Title: title, URL: loc})
	}
	return items, nil
}
