package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adda-Baaj/notice-watch/internal/config"
	"github.com/Adda-Baaj/notice-watch/internal/history"
	"github.com/Adda-Baaj/notice-watch/internal/logger"
	"github.com/Adda-Baaj/notice-watch/internal/monitor"
	"github.com/Adda-Baaj/notice-watch/pkg/httpclient"
	"github.com/Adda-Baaj/notice-watch/pkg/notifiers"
	"github.com/Adda-Baaj/notice-watch/pkg/sites"
)

// Monitor represents the announcement monitor runtime. It owns the site reader,
// the notifier fanout and the history store, and runs one check cycle per call.
type Monitor struct {
	cfg     *config.Config
	fanout  *notifiers.Fanout
	store   history.Store
	service *monitor.Service
	log     logger.Logger
}

// NewMonitor builds a monitor runtime from the loaded configuration.
func NewMonitor(ctx context.Context, cfg *config.Config, log logger.Logger) (*Monitor, error) {
	if cfg == nil || cfg.Watchlist == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	wl := cfg.Watchlist

	siteIDs := make([]string, 0, len(wl.Sites))
	for _, s := range wl.Sites {
		siteIDs = append(siteIDs, s.Name)
	}
	log.InfoObj("watchlist loaded", "watchlist_meta", map[string]any{
		"count":         len(siteIDs),
		"enabled":       len(sites.Enabled(wl.Sites)),
		"names":         siteIDs,
		"monitor_count": wl.MonitorCount,
	})

	reader := sites.NewReader(
		httpclient.NewRestyClient(cfg.FetchTimeout, wl.UserAgent),
		sites.DefaultExtractorRegistry(),
		wl.MonitorCount,
	)

	if notifiers.IsPlaceholderKey(wl.ServerChanSendKey) {
		log.WarnObj("serverchan send key not configured; serverchan notifications disabled", "notifier_meta", map[string]any{
			"watchlist_file": cfg.WatchlistFile,
		})
	}

	notifierCfgs := wl.NotifierConfigs()
	clients, err := notifiers.BuildAll(ctx, notifiers.DefaultRegistry(), notifierCfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}
	fanout := notifiers.NewFanout(clients)
	summaries := make([]map[string]string, 0, len(notifierCfgs))
	for _, n := range notifierCfgs {
		summaries = append(summaries, map[string]string{
			"id":   n.ID,
			"type": n.Type,
		})
	}
	if fanout.Size() == 0 {
		log.WarnObj("no notifiers configured; changes will only be recorded", "notifier_meta", map[string]any{"count": 0})
	} else {
		log.InfoObj("notifiers initialized", "notifier_meta", map[string]any{
			"count":     len(summaries),
			"notifiers": summaries,
		})
	}

	store, err := history.NewStore(cfg.HistoryType, cfg.HistoryPath)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init history: %w", err)
	}
	log.InfoObj("history store initialized", "history_config", map[string]any{
		"type": cfg.HistoryType,
		"path": cfg.HistoryPath,
	})

	return &Monitor{
		cfg:     cfg,
		fanout:  fanout,
		store:   store,
		service: monitor.NewService(reader, fanout, store, log),
		log:     log,
	}, nil
}

// RunOnce performs a single check cycle across all configured sites.
func (m *Monitor) RunOnce(ctx context.Context) (monitor.Summary, error) {
	if m == nil || m.service == nil {
		return monitor.Summary{}, fmt.Errorf("monitor is not initialized")
	}

	all := m.cfg.Watchlist.Sites
	start := time.Now()
	m.log.InfoObj("check cycle started", "cycle_meta", map[string]any{
		"sites_count": len(all),
		"started_at":  start.UTC(),
	})

	sum, err := m.service.RunCycle(ctx, all)
	m.log.InfoObj("check cycle finished", "cycle_meta", map[string]any{
		"sites_count": len(all),
		"checked":     len(sum.Checked),
		"skipped":     len(sum.Skipped),
		"failed":      len(sum.Failed),
		"changed":     len(sum.Changed),
		"saved":       sum.Saved,
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return sum, err
}

// History returns the persisted history as the next cycle would see it.
func (m *Monitor) History(ctx context.Context) (history.History, error) {
	if m == nil || m.store == nil {
		return nil, fmt.Errorf("monitor is not initialized")
	}
	return m.store.Load(ctx)
}

// Sites returns the configured sites in watchlist order.
func (m *Monitor) Sites() []sites.Site {
	if m == nil || m.cfg == nil || m.cfg.Watchlist == nil {
		return nil
	}
	return m.cfg.Watchlist.Sites
}

// Close releases notifier connections and the history store.
func (m *Monitor) Close() error {
	if m == nil {
		return nil
	}
	var errs []error
	if err := m.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if m.store != nil {
		if err := m.store.Close(); err != nil {
			m.log.ErrorObj("history store close failed", "error", err.Error())
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
