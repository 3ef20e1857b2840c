package sites

import (
	"fmt"
	"strings"
	"sync"
)

// extractorRegistry implements ExtractorRegistry.
type extractorRegistry struct {
	byType map[string]Extractor
	mu     sync.RWMutex
}

// NewExtractorRegistry builds a registry keyed by each extractor's Type.
func NewExtractorRegistry(extractors ...Extractor) ExtractorRegistry {
	reg := &extractorRegistry{byType: make(map[string]Extractor)}
	for _, e := range extractors {
		reg.register(e)
	}
	return reg
}

// register adds an extractor under its type.
func (r *extractorRegistry) register(e Extractor) {
	if e == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(e.Type()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.byType[key] = e
	r.mu.Unlock()
}

// ExtractorFor selects the extractor for the site's type, defaulting to CSS selectors.
func (r *extractorRegistry) ExtractorFor(site Site) (Extractor, error) {
	if r == nil {
		return nil, fmt.Errorf("extractor registry is nil")
	}

	key := strings.ToLower(strings.TrimSpace(site.Type))
	if key == "" {
		key = TypeSelector
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.byType[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("no extractor registered for site %q (type %q)", site.Name, site.Type)
}

// DefaultExtractorRegistry wires up the known extraction strategies.
func DefaultExtractorRegistry() ExtractorRegistry {
	return NewExtractorRegistry(NewSelectorExtractor(), NewSitemapExtractor())
}
