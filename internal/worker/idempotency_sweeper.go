package worker

import (
	"context"
	"log/slog"
	"time"

	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/usecase/shared"
)

// IdempotencySweeper deletes idempotency keys whose TTL has passed.
type IdempotencySweeper struct {
	store    shared.IdempotencyStore
	clock    clock.Clock
	interval time.Duration
}

func NewIdempotencySweeper(store shared.IdempotencyStore, clk clock.Clock, interval time.Duration) *IdempotencySweeper {
	return &IdempotencySweeper{
		store:    store,
		clock:    clk,
		interval: interval,
	}
}

func (w *IdempotencySweeper) Enabled() bool {
	return w.interval > 0
}

func (w *IdempotencySweeper) Start(ctx context.Context) {
	slog.Info("starting idempotency sweeper", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("idempotency sweeper stopped")
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				slog.Error("idempotency sweep failed", "error", err)
			}
		}
	}
}

func (w *IdempotencySweeper) RunOnce(ctx context.Context) (int64, error) {
	deleted, err := w.store.DeleteExpired(ctx, w.clock.Now())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		slog.Info("expired idempotency keys deleted", "count", deleted)
	}
	return deleted, nil
}
