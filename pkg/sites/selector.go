package sites

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/notice-watch/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ErrContainerNotFound is returned when the list container selector matches nothing.
var ErrContainerNotFound = errors.New("list container not found")

// selectorExtractor extracts items from HTML using the site's CSS selectors.
type selectorExtractor struct{}

// NewSelectorExtractor builds the CSS selector strategy.
func NewSelectorExtractor() Extractor { return selectorExtractor{} }

func (selectorExtractor) Type() string { return TypeSelector }

// Extract finds the first list container, walks its list items (truncated to
// limit before link filtering) and keeps items whose link has an href and a title.
func (selectorExtractor) Extract(doc []byte, site Site, limit int) ([]domain.Item, error) {
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	sel := site.Selectors
	container := page.Find(sel.ListContainer).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: selector %q", ErrContainerNotFound, sel.ListContainer)
	}

	nodes := container.Find(sel.ListItem)
	if limit > 0 && nodes.Length() > limit {
		nodes = nodes.Slice(0, limit)
	}

	base := site.LinkBase()
	items := make([]domain.Item, 0, nodes.Length())
	nodes.Each(func(_ int, node *goquery.Selection) {
		link := node.Find(sel.Link).First()
		if link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		title := linkTitle(link)
		if title == "" {
			return
		}
		items = append(items, domain.Item{
			Title: title,
			URL:   resolveURL(href, base),
		})
	})

	return items, nil
}

// linkTitle prefers the title attribute, which portals use for untruncated
// headlines, and falls back to the link text.
func linkTitle(link *goquery.Selection) string {
	if v, ok := link.Attr("title"); ok {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return strings.Join(strings.Fields(link.Text()), " ")
}
