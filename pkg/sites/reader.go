package sites

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
	"github.com/Adda-Baaj/notice-watch/pkg/httpclient"
)

const (
	maxDocumentBytes    = 4 << 20 // 4 MiB
	DefaultFetchTimeout = 30 * time.Second
)

// Reader fetches a site's page and extracts its current items.
type Reader struct {
	client     HTTPClient
	extractors ExtractorRegistry
	limit      int
}

// NewReader wires a reader. limit caps the items per site (0 = unlimited).
func NewReader(client HTTPClient, extractors ExtractorRegistry, limit int) *Reader {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if extractors == nil {
		extractors = DefaultExtractorRegistry()
	}
	if limit < 0 {
		limit = 0
	}
	return &Reader{client: client, extractors: extractors, limit: limit}
}

// DefaultHTTPClient returns a resty-backed client with the default fetch timeout.
func DefaultHTTPClient() HTTPClient {
	return httpclient.NewRestyClient(DefaultFetchTimeout, "")
}

// Read performs one fetch. Network failures, non-200 responses and
// extraction failures are returned as errors; the caller decides to skip.
func (r *Reader) Read(ctx context.Context, site Site) ([]domain.Item, error) {
	if r == nil || r.client == nil {
		return nil, fmt.Errorf("site reader is not initialized")
	}
	if strings.TrimSpace(site.URL) == "" {
		return nil, fmt.Errorf("site %q url is empty", site.Name)
	}

	extractor, err := r.extractors.ExtractorFor(site)
	if err != nil {
		return nil, err
	}

	body, err := r.fetch(ctx, site)
	if err != nil {
		return nil, err
	}

	items, err := extractor.Extract(body, site, r.limit)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", site.Name, err)
	}
	return items, nil
}

func (r *Reader) fetch(ctx context.Context, site Site) ([]byte, error) {
	resp, err := r.client.Get(ctx, site.URL, Headers(site))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", site.Name, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d body: %s", site.Name, resp.StatusCode(), responseSnippet(body))
	}
	if len(body) > maxDocumentBytes {
		body = body[:maxDocumentBytes]
	}
	return body, nil
}
