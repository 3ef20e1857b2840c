package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from env files, environment
// variables and command-line flags, plus the watchlist it points at.
type Config struct {
	AppName             string        `mapstructure:"app_name"`
	Env                 string        `mapstructure:"app_env"`
	LogLevel            string        `mapstructure:"log_level"`
	LogFormat           string        `mapstructure:"log_format"`
	WatchlistFile       string        `mapstructure:"watchlist_file"`
	HistoryType         string        `mapstructure:"history_type"`
	HistoryPath         string        `mapstructure:"history_path"`
	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`

	Watchlist *Watchlist `mapstructure:"-"`
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"config":    "watchlist_file",
	"history":   "history_path",
	"log-level": "log_level",
}

// Load reads configuration and the watchlist file. Any error here is fatal.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "notice-watch")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("watchlist_file", "./configs/watchlist.yaml")
	v.SetDefault("history_type", "json")
	v.SetDefault("history_path", "./data/announcements.json")
	v.SetDefault("fetch_timeout_seconds", 30)

	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	cfg.HistoryType = strings.ToLower(strings.TrimSpace(cfg.HistoryType))
	if strings.TrimSpace(cfg.HistoryPath) == "" {
		return nil, fmt.Errorf("history_path is required")
	}

	wl, err := LoadWatchlist(cfg.WatchlistFile)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	cfg.Watchlist = wl

	return &cfg, nil
}

// Summary returns a loggable view of the configuration without credentials.
func (c *Config) Summary() map[string]any {
	if c == nil {
		return nil
	}
	out := map[string]any{
		"app_name":       c.AppName,
		"app_env":        c.Env,
		"log_level":      c.LogLevel,
		"watchlist_file": c.WatchlistFile,
		"history_type":   c.HistoryType,
		"history_path":   c.HistoryPath,
		"fetch_timeout":  c.FetchTimeout.String(),
	}
	if c.Watchlist != nil {
		out["sites_count"] = len(c.Watchlist.Sites)
		out["monitor_count"] = c.Watchlist.MonitorCount
	}
	return out
}
