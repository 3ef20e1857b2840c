package sites

import (
	"net/url"
	"strings"
)

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// resolveURL resolves href against base. Unparseable input is returned trimmed.
func resolveURL(href, base string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil || base == "" {
		return ref.String()
	}
	return b.ResolveReference(ref).String()
}
