package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Adda-Baaj/notice-watch/pkg/notifiers"
	"github.com/Adda-Baaj/notice-watch/pkg/sites"
)

// Watchlist is the user-maintained file listing the monitored sites and where
// to send notifications.
type Watchlist struct {
	ServerChanSendKey string                     `json:"server_chan_send_key" yaml:"server_chan_send_key"`
	MonitorCount      int                        `json:"monitor_count" yaml:"monitor_count"`
	UserAgent         string                     `json:"user_agent" yaml:"user_agent"`
	Sites             []sites.Site               `json:"sites" yaml:"sites"`
	Notifiers         []notifiers.NotifierConfig `json:"notifiers" yaml:"notifiers"`
}

// LoadWatchlist reads, decodes and validates the watchlist file (YAML or JSON).
func LoadWatchlist(path string) (*Watchlist, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("watchlist file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}

	wl, err := parseWatchlist(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if err := wl.normalize(); err != nil {
		return nil, err
	}
	return &wl, nil
}

type unmarshalFn func([]byte, any) error

// parseWatchlist picks the decoder by extension, trying all of them for unknown extensions.
func parseWatchlist(data []byte, ext string) (Watchlist, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "json", ext: ".json", fn: json.Unmarshal},
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
	}

	known := false
	for _, d := range decoders {
		if d.ext == ext {
			known = true
		}
	}

	var errs []error
	for _, d := range decoders {
		if known && ext != d.ext {
			continue
		}
		var wl Watchlist
		if err := d.fn(data, &wl); err != nil {
			errs = append(errs, fmt.Errorf("decode %s watchlist: %w", d.name, err))
			continue
		}
		return wl, nil
	}

	return Watchlist{}, fmt.Errorf("watchlist file format not recognized (expected YAML or JSON): %w", errors.Join(errs...))
}

// normalize sanitizes and validates sites and notifiers in place.
func (w *Watchlist) normalize() error {
	w.ServerChanSendKey = strings.TrimSpace(w.ServerChanSendKey)
	w.UserAgent = strings.TrimSpace(w.UserAgent)

	if w.MonitorCount < 0 {
		return fmt.Errorf("invalid monitor_count %d (0 means unlimited)", w.MonitorCount)
	}
	if len(w.Sites) == 0 {
		return errors.New("watchlist file contains no sites entries")
	}

	names := make(map[string]struct{}, len(w.Sites))
	for i := range w.Sites {
		s := sites.Sanitize(w.Sites[i])
		if err := sites.Validate(s); err != nil {
			return fmt.Errorf("sites[%d]: %w", i, err)
		}
		if _, exists := names[s.Name]; exists {
			return fmt.Errorf("duplicate site name %q", s.Name)
		}
		names[s.Name] = struct{}{}
		w.Sites[i] = s
	}

	ids := make(map[string]struct{}, len(w.Notifiers))
	for i := range w.Notifiers {
		n := notifiers.Sanitize(w.Notifiers[i])
		if err := notifiers.Validate(n); err != nil {
			return fmt.Errorf("notifiers[%d]: %w", i, err)
		}
		if _, exists := ids[n.ID]; exists {
			return fmt.Errorf("duplicate notifier id %q", n.ID)
		}
		ids[n.ID] = struct{}{}
		w.Notifiers[i] = n
	}
	return nil
}

// NotifierConfigs returns the enabled notifiers, including the implicit
// ServerChan entry when a real send key is set.
func (w *Watchlist) NotifierConfigs() []notifiers.NotifierConfig {
	if w == nil {
		return nil
	}
	out := notifiers.Enabled(w.Notifiers)
	if !notifiers.IsPlaceholderKey(w.ServerChanSendKey) {
		out = append([]notifiers.NotifierConfig{notifiers.ServerChanFromKey(w.ServerChanSendKey)}, out...)
	}
	return out
}
