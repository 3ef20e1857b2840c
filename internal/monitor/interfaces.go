package monitor

import (
	"context"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
	"github.com/Adda-Baaj/notice-watch/internal/history"
	"github.com/Adda-Baaj/notice-watch/pkg/sites"
)

// SiteReader returns the current items of a site. An empty result or an
// error both mean "nothing usable this cycle".
type SiteReader interface {
	Read(ctx context.Context, site sites.Site) ([]domain.Item, error)
}

// Notifier delivers one aggregated notification and reports how many sinks accepted it.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) (int, error)
}

// HistoryStore is the subset of history.Store the cycle needs.
type HistoryStore interface {
	Load(ctx context.Context) (history.History, error)
	Save(ctx context.Context, h history.History) error
}
