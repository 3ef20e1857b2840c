package notifiers

import (
	"context"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
)

// Notifier pushes an aggregated notification to a downstream sink
// (ServerChan, HTTP webhook, SQS, etc).
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, n domain.Notification) error
}

// Logger is the structured logging surface notifiers write delivery details to.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type discardLogger struct{}

func (discardLogger) InfoObj(string, string, interface{})  {}
func (discardLogger) DebugObj(string, string, interface{}) {}
func (discardLogger) WarnObj(string, string, interface{})  {}
func (discardLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return discardLogger{}
	}
	return log
}
