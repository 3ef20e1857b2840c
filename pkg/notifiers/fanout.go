package notifiers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
)

// Fanout dispatches notifications to all configured notifiers.
type Fanout struct {
	notifiers []Notifier
}

// NewFanout builds a dispatcher that fans out notifications across notifiers.
func NewFanout(ns []Notifier) *Fanout {
	cp := make([]Notifier, 0, len(ns))
	for _, n := range ns {
		if n == nil {
			continue
		}
		cp = append(cp, n)
	}
	return &Fanout{notifiers: cp}
}

// Notify forwards the notification to every registered notifier, one after another.
// It returns the number of notifiers that successfully handled it.
func (f *Fanout) Notify(ctx context.Context, n domain.Notification) (int, error) {
	if f == nil || len(f.notifiers) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, p := range f.notifiers {
		if err := p.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s notifier[%s]: %w", p.Type(), p.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Size returns the number of active notifiers.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.notifiers)
}

// Close releases notifiers that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	return closeAll(f.notifiers)
}

func closeAll(ns []Notifier) error {
	var errs []error
	for _, n := range ns {
		if c, ok := n.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close notifier %s: %w", n.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
