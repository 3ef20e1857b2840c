package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adda-Baaj/notice-watch/internal/detector"
	"github.com/Adda-Baaj/notice-watch/internal/history"
	"github.com/Adda-Baaj/notice-watch/internal/logger"
	"github.com/Adda-Baaj/notice-watch/pkg/sites"
)

// Service runs check cycles: read each enabled site, detect new items, notify,
// and persist history once at the end of the cycle.
type Service struct {
	reader   SiteReader
	notifier Notifier
	store    HistoryStore
	log      logger.Logger
}

// SiteChange records a site whose history was replaced during the cycle.
type SiteChange struct {
	Site     string `json:"site"`
	NewItems int    `json:"new_items"`
	Notified bool   `json:"notified"`
}

// Summary describes the outcome of one cycle.
type Summary struct {
	Checked   []string     `json:"checked"`
	Skipped   []string     `json:"skipped"`
	Failed    []string     `json:"failed"`
	Unchanged []string     `json:"unchanged"`
	Changed   []SiteChange `json:"changed"`
	Saved     bool         `json:"saved"`
}

// NewService wires a cycle runner. A nil notifier disables notifications.
func NewService(reader SiteReader, notifier Notifier, store HistoryStore, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		reader:   reader,
		notifier: notifier,
		store:    store,
		log:      log,
	}
}

// RunCycle processes sites sequentially in the given order. Per-site failures
// are logged and never abort the cycle. The only returned errors are a
// cancelled context (nothing saved) and a failed history save.
func (s *Service) RunCycle(ctx context.Context, cfgs []sites.Site) (Summary, error) {
	var sum Summary
	if s == nil || s.reader == nil || s.store == nil {
		return sum, fmt.Errorf("monitor service is not initialized")
	}

	loaded := s.loadHistory(ctx)
	current := loaded.Clone()

	for _, site := range cfgs {
		if err := ctx.Err(); err != nil {
			s.log.WarnObj("check cycle interrupted; history not saved", "cycle_interrupt", map[string]any{
				"next_site": site.Name,
				"reason":    err.Error(),
			})
			return sum, err
		}

		if !site.Enabled {
			s.log.InfoObj("skipping disabled site", "site", site.Name)
			sum.Skipped = append(sum.Skipped, site.Name)
			continue
		}

		sum.Checked = append(sum.Checked, site.Name)
		s.checkSite(ctx, site, current, &sum)
	}

	if current.Equal(loaded) {
		s.log.InfoObj("history unchanged; save skipped", "history_meta", map[string]any{
			"sites_checked": len(sum.Checked),
		})
		return sum, nil
	}

	if err := s.store.Save(ctx, current); err != nil {
		s.log.ErrorObj("history save failed", "history_error", err.Error())
		return sum, fmt.Errorf("save history: %w", err)
	}
	sum.Saved = true
	s.log.InfoObj("history saved", "history_meta", map[string]any{
		"sites_changed": len(sum.Changed),
		"sites_total":   len(current),
	})
	return sum, nil
}

// loadHistory falls back to an empty history on any read failure.
func (s *Service) loadHistory(ctx context.Context) history.History {
	h, err := s.store.Load(ctx)
	if err != nil {
		msg := "history load failed; starting with empty history"
		if errors.Is(err, history.ErrCorrupt) {
			msg = "history is corrupt; starting with empty history"
		}
		s.log.WarnObj(msg, "history_error", err.Error())
		return history.History{}
	}
	if h == nil {
		return history.History{}
	}
	return h
}

// checkSite reads one site and, when new items appear, notifies and replaces
// the site's entry in h. Empty or failed reads leave h untouched.
func (s *Service) checkSite(ctx context.Context, site sites.Site, h history.History, sum *Summary) {
	s.log.InfoObj("checking site", "site", site.Name)

	items, err := s.reader.Read(ctx, site)
	if err != nil {
		s.log.WarnObj("site check failed; skipping", "site_error", map[string]any{
			"site":  site.Name,
			"error": err.Error(),
		})
		sum.Failed = append(sum.Failed, site.Name)
		return
	}
	if len(items) == 0 {
		s.log.WarnObj("no announcements retrieved; skipping", "site", site.Name)
		sum.Failed = append(sum.Failed, site.Name)
		return
	}

	res := detector.Detect(site.Name, items, h.URLs(site.Name))
	if !res.Changed() {
		s.log.InfoObj("no new announcements since last check", "site_result", map[string]any{
			"site":        site.Name,
			"items_found": len(items),
		})
		sum.Unchanged = append(sum.Unchanged, site.Name)
		return
	}

	s.log.InfoObj("new announcements found", "site_result", map[string]any{
		"site":      site.Name,
		"new_count": len(res.NewItems),
		"new_items": res.NewItems,
	})

	change := SiteChange{Site: site.Name, NewItems: len(res.NewItems)}
	change.Notified = s.notify(ctx, res)

	// History moves forward even when delivery failed, so the same items are
	// not reported again next cycle.
	h.Set(site.Name, res.UpdatedURLs)
	sum.Changed = append(sum.Changed, change)
}

func (s *Service) notify(ctx context.Context, res detector.Result) bool {
	if s.notifier == nil {
		return false
	}

	n := res.Notification()
	delivered, err := s.notifier.Notify(ctx, n)
	if err != nil {
		s.log.WarnObj("notification delivery failed", "notify_error", map[string]any{
			"site":      res.SiteName,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}
	if delivered > 0 {
		s.log.InfoObj("notification sent", "notify_result", map[string]any{
			"site":      res.SiteName,
			"title":     n.Title,
			"delivered": delivered,
		})
	}
	return delivered > 0
}
