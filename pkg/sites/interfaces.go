package sites

import (
	"context"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
	"github.com/Adda-Baaj/notice-watch/pkg/httpclient"
)

// Extractor turns a fetched document into announcement items.
// Concrete implementations live in strategy-specific files (e.g., selector.go).
type Extractor interface {
	Type() string
	// Extract returns at most limit items (0 means unlimited) in document order.
	Extract(doc []byte, site Site, limit int) ([]domain.Item, error)
}

// ExtractorRegistry resolves the extractor implementation for a given site.
type ExtractorRegistry interface {
	ExtractorFor(site Site) (Extractor, error)
}

// ItemReader fetches and extracts the current items of a site.
type ItemReader interface {
	Read(ctx context.Context, site Site) ([]domain.Item, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within sites.
type HTTPClient = httpclient.Client
