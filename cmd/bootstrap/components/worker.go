package components

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/config"
	"coworking-pos/internal/usecase/commands"
	"coworking-pos/internal/usecase/shared"
	"coworking-pos/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewCashCutScheduler,
		NewIdempotencySweeper,
	),
	fx.Invoke(
		runCashCutScheduler,
		runIdempotencySweeper,
	),
)

type backgroundWorker interface {
	Enabled() bool
	Start(ctx context.Context)
}

func NewCashCutScheduler(cfg config.Config, cmds commands.CashCutCommands) (*worker.CashCutScheduler, error) {
	operatorID, err := uuid.Parse(cfg.CashCut.SystemOperatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid SYSTEM_OPERATOR_ID: %w", err)
	}
	return worker.NewCashCutScheduler(cmds, operatorID, cfg.CashCut.ScheduleInterval), nil
}

func NewIdempotencySweeper(cfg config.Config, store shared.IdempotencyStore, clk clock.Clock) *worker.IdempotencySweeper {
	return worker.NewIdempotencySweeper(store, clk, cfg.Idempotency.SweepInterval)
}

func runCashCutScheduler(lc fx.Lifecycle, w *worker.CashCutScheduler) {
	appendWorker(lc, "cash_cut_scheduler", w)
}

func runIdempotencySweeper(lc fx.Lifecycle, w *worker.IdempotencySweeper) {
	appendWorker(lc, "idempotency_sweeper", w)
}

// appendWorker ties a ticker worker to the app lifecycle; stop waits for the loop to return.
func appendWorker(lc fx.Lifecycle, name string, w backgroundWorker) {
	if !w.Enabled() {
		slog.Info("worker disabled", "worker", name)
		return
	}

	var (
		cancel context.CancelFunc
		wg     sync.WaitGroup
	)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.Start(ctx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
