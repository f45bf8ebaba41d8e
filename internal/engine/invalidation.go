// README: Snapshot refresh triggers; Redis invalidation channel plus fallback ticker.
package engine

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RunInvalidationListener subscribes to the administrative mutation channel
// and rebuilds the snapshot on every message. The payload identifies the
// mutated entity but the rebuild is always whole-snapshot, so it is only
// logged.
func (e *Engine) RunInvalidationListener(ctx context.Context, rdb *redis.Client, channel string) {
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			e.log.WithField("mutation", msg.Payload).Info("invalidation received")
			if err := e.Refresh(ctx); err != nil {
				e.log.WithError(err).Error("snapshot refresh failed; previous snapshot still serving")
			}
		}
	}
}

// RunRefreshTicker rebuilds on a fixed interval as a safety net for missed
// invalidations. This bounds the staleness window when the channel drops.
func (e *Engine) RunRefreshTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.Refresh(ctx); err != nil {
				e.log.WithError(err).Error("periodic snapshot refresh failed")
			}
		}
	}
}
