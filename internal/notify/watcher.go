// Package notify polls the notifications endpoint in the background so a
// long-running client can react to new notifications as they arrive.
package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/core/ports"
)

const defaultInterval = 30 * time.Second

// Watcher periodically fetches the caller's notification list and hands
// it to a callback whenever the unread count changes. Fetch failures are
// logged and retried on the next tick; they never stop the watcher.
type Watcher struct {
	api      ports.TaskAPI
	interval time.Duration
	log      zerolog.Logger

	lastUnread int
}

// NewWatcher creates a Watcher polling at the given interval.
// If interval <= 0, defaultInterval is used.
func NewWatcher(api ports.TaskAPI, interval time.Duration, log zerolog.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{api: api, interval: interval, log: log, lastUnread: -1}
}

// Run polls until ctx is cancelled. onChange is invoked with the fresh
// list every time the unread count differs from the previous poll,
// including the first successful fetch.
func (w *Watcher) Run(ctx context.Context, onChange func(domain.NotificationList)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx, onChange)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx, onChange)
		}
	}
}

func (w *Watcher) poll(ctx context.Context, onChange func(domain.NotificationList)) {
	list, err := w.api.GetNotifications(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.Error().Err(err).Msg("notification poll failed")
		return
	}
	if list.UnreadCount == w.lastUnread {
		return
	}
	w.lastUnread = list.UnreadCount
	onChange(*list)
}
