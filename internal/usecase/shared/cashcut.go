package shared

import (
	"context"
	"time"

	"coworking-pos/internal/domain/cashcut"

	"github.com/google/uuid"
)

// CashCutStore is the durable side of the cash-cut writer. Insert must enforce
// key uniqueness: on a duplicate it returns the stored record and false. It
// answers a CONFLICT repository error when a stored cut already ends after
// the new cut's period start.
type CashCutStore interface {
	FindByKey(ctx context.Context, key string) (*cashcut.CashCut, error)
	FindByID(ctx context.Context, id uuid.UUID) (*cashcut.CashCut, error)
	LatestPeriodEnd(ctx context.Context) (*time.Time, error)
	Insert(ctx context.Context, cut *cashcut.CashCut) (*cashcut.CashCut, bool, error)
	List(ctx context.Context, limit int) ([]*cashcut.CashCut, error)
}

type LedgerReader interface {
	Ledger(ctx context.Context, period cashcut.Period) (cashcut.Ledger, error)
}
