package service

import (
	"context"
	"time"

	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
)

// SessionReaper periodically sweeps expired sessions until its context ends.
type SessionReaper struct {
	store    *SessionStore
	interval time.Duration
}

func NewSessionReaper(store *SessionStore, interval time.Duration) *SessionReaper {
	return &SessionReaper{store: store, interval: interval}
}

// Run blocks until ctx is cancelled. A non-positive interval disables it.
func (r *SessionReaper) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ctx = ctxutil.WithFunction(ctx, "service", "SessionReaper.Run")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *SessionReaper) sweep(ctx context.Context) {
	start := time.Now()
	n, err := r.store.Sweep(ctx)
	if err != nil {
		return
	}
	if n > 0 {
		logger.InfoWithContext(ctx, "Expired sessions removed").
			Int64("removed", n).
			Duration(time.Since(start)).
			Log()
	}
}
