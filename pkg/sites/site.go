package sites

import (
	"errors"
	"fmt"
	"strings"
)

// Package sites contains monitored site definitions and the reader that
// extracts announcement items from them.

const (
	// TypeSelector extracts items from HTML with CSS selectors.
	TypeSelector = "css"
	// TypeSitemap extracts items from an XML sitemap.
	TypeSitemap = "sitemap"
)

// Selectors locate the announcement list inside an HTML page.
type Selectors struct {
	ListContainer string `json:"list_container" yaml:"list_container"`
	ListItem      string `json:"list_item" yaml:"list_item"`
	Link          string `json:"link" yaml:"link"`
}

// Site is one monitored source. Name is the stable history key.
type Site struct {
	Name      string            `json:"name" yaml:"name"`
	URL       string            `json:"url" yaml:"url"`
	BaseURL   string            `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Enabled   bool              `json:"enabled" yaml:"enabled"`
	Type      string            `json:"type,omitempty" yaml:"type,omitempty"`
	Selectors Selectors         `json:"selectors" yaml:"selectors"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Sanitize trims fields and applies defaults.
func Sanitize(s Site) Site {
	s.Name = strings.TrimSpace(s.Name)
	s.URL = strings.TrimSpace(s.URL)
	s.BaseURL = strings.TrimSpace(s.BaseURL)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	if s.Type == "" {
		s.Type = TypeSelector
	}
	s.Selectors.ListContainer = strings.TrimSpace(s.Selectors.ListContainer)
	s.Selectors.ListItem = strings.TrimSpace(s.Selectors.ListItem)
	s.Selectors.Link = strings.TrimSpace(s.Selectors.Link)
	s.Headers = sanitizeHeaders(s.Headers)
	return s
}

// Validate checks that required fields are present for the site's type.
func Validate(s Site) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.URL == "" {
		return fmt.Errorf("url is required for site %q", s.Name)
	}
	switch s.Type {
	case TypeSelector:
		if s.Selectors.ListContainer == "" || s.Selectors.ListItem == "" || s.Selectors.Link == "" {
			return fmt.Errorf("selectors.list_container, selectors.list_item and selectors.link are required for site %q", s.Name)
		}
	case TypeSitemap:
	default:
		return fmt.Errorf("unsupported type %q for site %q", s.Type, s.Name)
	}
	return nil
}

// LinkBase returns the URL relative links are resolved against.
func (s Site) LinkBase() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return s.URL
}

// Enabled returns the enabled sites, preserving order.
func Enabled(all []Site) []Site {
	out := make([]Site, 0, len(all))
	for _, s := range all {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Headers returns the site's request headers (empty values removed).
func Headers(s Site) map[string]string {
	out := make(map[string]string, len(s.Headers))
	for k, v := range s.Headers {
		out[k] = v
	}
	return out
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
