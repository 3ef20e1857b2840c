package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Package history persists, per site name, the URL set last seen for that site.

// ErrCorrupt marks persisted history that exists but cannot be decoded.
// Callers treat it as recoverable and continue with an empty History.
var ErrCorrupt = errors.New("history is corrupt")

// History maps a site name to the URLs most recently observed for it.
// Order inside a site is not meaningful for comparison.
type History map[string][]string

// Store loads and saves the complete History.
type Store interface {
	Close() error
	// Load returns an empty History (never nil) alongside any error.
	Load(ctx context.Context) (History, error)
	// Save replaces the persisted History as a whole.
	Save(ctx context.Context, h History) error
}

const (
	TypeJSON  = "json"
	TypeBBolt = "bbolt"
)

// NewStore creates the configured history backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%s history requires a path", typ)
	}

	switch typ {
	case "", TypeJSON:
		return newJSONStore(path), nil
	case TypeBBolt:
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported history type %q", typ)
	}
}

// URLs returns the stored URLs for site, or nil if the site is unknown.
func (h History) URLs(site string) []string {
	if h == nil {
		return nil
	}
	return h[site]
}

// Set replaces the URL list for site.
func (h History) Set(site string, urls []string) {
	cp := make([]string, len(urls))
	copy(cp, urls)
	h[site] = cp
}

// Clone returns a deep copy.
func (h History) Clone() History {
	out := make(History, len(h))
	for site, urls := range h {
		out.Set(site, urls)
	}
	return out
}

// Equal reports structural equality: same sites, same URL lists in the same order.
func (h History) Equal(other History) bool {
	if len(h) != len(other) {
		return false
	}
	for site, urls := range h {
		o, ok := other[site]
		if !ok || len(o) != len(urls) {
			return false
		}
		for i := range urls {
			if urls[i] != o[i] {
				return false
			}
		}
	}
	return true
}

// Sites returns the site names in sorted order.
func (h History) Sites() []string {
	out := make([]string, 0, len(h))
	for site := range h {
		out = append(out, site)
	}
	sort.Strings(out)
	return out
}
