package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

const minimalWatchlist = `{"sites": [{"name": "a", "url": "https://a", "type": "sitemap", "enabled": true}]}`

func TestLoadUsesEnvironment(t *testing.T) {
	path := writeFile(t, "watchlist.json", minimalWatchlist)
	t.Setenv("WATCHLIST_FILE", path)
	t.Setenv("HISTORY_TYPE", "BBolt")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "12")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WatchlistFile != path {
		t.Fatalf("watchlist_file = %q", cfg.WatchlistFile)
	}
	if cfg.HistoryType != "bbolt" {
		t.Fatalf("history_type = %q", cfg.HistoryType)
	}
	if cfg.FetchTimeout != 12*time.Second {
		t.Fatalf("fetch timeout = %v", cfg.FetchTimeout)
	}
	if cfg.Watchlist == nil || len(cfg.Watchlist.Sites) != 1 {
		t.Fatalf("watchlist not loaded: %#v", cfg.Watchlist)
	}
	if s := cfg.Summary(); s["sites_count"] != 1 {
		t.Fatalf("unexpected summary %#v", s)
	}
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	path := writeFile(t, "watchlist.json", minimalWatchlist)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("history", "", "")
	if err := flags.Parse([]string{"--config", path, "--history", "/tmp/h.json"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WatchlistFile != path || cfg.HistoryPath != "/tmp/h.json" {
		t.Fatalf("flags not applied: %#v", cfg)
	}
}

func TestLoadFailsWithoutWatchlist(t *testing.T) {
	t.Setenv("WATCHLIST_FILE", "/nonexistent/watchlist.yaml")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for missing watchlist")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("WATCHLIST_FILE", writeFile(t, "watchlist.json", minimalWatchlist))
	t.Setenv("FETCH_TIMEOUT_SECONDS", "0")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
