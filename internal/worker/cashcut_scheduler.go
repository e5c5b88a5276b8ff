package worker

import (
	"context"
	"log/slog"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/usecase/commands"

	"github.com/google/uuid"
)

const scheduledCutNotes = "scheduled"

// CashCutScheduler closes a scheduled cut on every tick as the system operator.
type CashCutScheduler struct {
	commands   commands.CashCutCommands
	operatorID uuid.UUID
	interval   time.Duration
}

func NewCashCutScheduler(cmds commands.CashCutCommands, operatorID uuid.UUID, interval time.Duration) *CashCutScheduler {
	return &CashCutScheduler{
		commands:   cmds,
		operatorID: operatorID,
		interval:   interval,
	}
}

func (w *CashCutScheduler) Enabled() bool {
	return w.interval > 0
}

// Start blocks until ctx is done.
func (w *CashCutScheduler) Start(ctx context.Context) {
	slog.Info("starting cash cut scheduler", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cash cut scheduler stopped")
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				slog.Error("scheduled cash cut failed", "error", err)
			}
		}
	}
}

func (w *CashCutScheduler) RunOnce(ctx context.Context) error {
	result, err := w.commands.Create(ctx, w.operatorID, cashcut.KindScheduled, scheduledCutNotes)
	if err != nil {
		return err
	}
	slog.Info("scheduled cash cut done",
		"cash_cut_id", result.CashCut.ID,
		"replayed", result.IsReplayed,
		"transactions", result.CashCut.TransactionCount)
	return nil
}
