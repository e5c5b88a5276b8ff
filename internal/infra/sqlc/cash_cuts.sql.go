package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const cashCutColumns = `id, kind, period_start, period_end, total_income, total_cost, total_profit,
       expense_total, net_profit, transaction_count, payment_method_breakdown,
       service_type_breakdown, top_products, hourly_breakdown, idempotency_key, notes,
       created_by, created_at`

func scanCashCut(row interface{ Scan(...any) error }) (CashCuts, error) {
	var i CashCuts
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.PeriodStart,
		&i.PeriodEnd,
		&i.TotalIncome,
		&i.TotalCost,
		&i.TotalProfit,
		&i.ExpenseTotal,
		&i.NetProfit,
		&i.TransactionCount,
		&i.PaymentMethodBreakdown,
		&i.ServiceTypeBreakdown,
		&i.TopProducts,
		&i.HourlyBreakdown,
		&i.IdempotencyKey,
		&i.Notes,
		&i.CreatedBy,
		&i.CreatedAt,
	)
	return i, err
}

// InsertCashCut returns pgx.ErrNoRows when the idempotency key is taken.
const insertCashCut = `-- name: InsertCashCut :one
INSERT INTO cash_cuts (
    id, kind, period_start, period_end, total_income, total_cost, total_profit,
    expense_total, net_profit, transaction_count, payment_method_breakdown,
    service_type_breakdown, top_products, hourly_breakdown, idempotency_key, notes,
    created_by, created_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
)
ON CONFLICT (idempotency_key) DO NOTHING
RETURNING id
`

type InsertCashCutParams struct {
	ID                     uuid.UUID          `json:"id"`
	Kind                   string             `json:"kind"`
	PeriodStart            pgtype.Timestamptz `json:"period_start"`
	PeriodEnd              pgtype.Timestamptz `json:"period_end"`
	TotalIncome            pgtype.Numeric     `json:"total_income"`
	TotalCost              pgtype.Numeric     `json:"total_cost"`
	TotalProfit            pgtype.Numeric     `json:"total_profit"`
	ExpenseTotal           pgtype.Numeric     `json:"expense_total"`
	NetProfit              pgtype.Numeric     `json:"net_profit"`
	TransactionCount       int32              `json:"transaction_count"`
	PaymentMethodBreakdown []byte             `json:"payment_method_breakdown"`
	ServiceTypeBreakdown   []byte             `json:"service_type_breakdown"`
	TopProducts            []byte             `json:"top_products"`
	HourlyBreakdown        []byte             `json:"hourly_breakdown"`
	IdempotencyKey         string             `json:"idempotency_key"`
	Notes                  string             `json:"notes"`
	CreatedBy              uuid.UUID          `json:"created_by"`
	CreatedAt              pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertCashCut(ctx context.Context, db DBTX, arg InsertCashCutParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, insertCashCut,
		arg.ID,
		arg.Kind,
		arg.PeriodStart,
		arg.PeriodEnd,
		arg.TotalIncome,
		arg.TotalCost,
		arg.TotalProfit,
		arg.ExpenseTotal,
		arg.NetProfit,
		arg.TransactionCount,
		arg.PaymentMethodBreakdown,
		arg.ServiceTypeBreakdown,
		arg.TopProducts,
		arg.HourlyBreakdown,
		arg.IdempotencyKey,
		arg.Notes,
		arg.CreatedBy,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const lockCashCutPeriods = `-- name: LockCashCutPeriods :exec
SELECT pg_advisory_xact_lock(hashtext('cash_cuts_period'))
`

// LockCashCutPeriods serializes cut inserts until the surrounding transaction ends.
func (q *Queries) LockCashCutPeriods(ctx context.Context, db DBTX) error {
	_, err := db.Exec(ctx, lockCashCutPeriods)
	return err
}

const findCashCutByKey = `-- name: FindCashCutByKey :one
SELECT ` + cashCutColumns + ` FROM cash_cuts WHERE idempotency_key = $1
`

func (q *Queries) FindCashCutByKey(ctx context.Context, db DBTX, idempotencyKey string) (CashCuts, error) {
	return scanCashCut(db.QueryRow(ctx, findCashCutByKey, idempotencyKey))
}

const findCashCutByID = `-- name: FindCashCutByID :one
SELECT ` + cashCutColumns + ` FROM cash_cuts WHERE id = $1
`

func (q *Queries) FindCashCutByID(ctx context.Context, db DBTX, id uuid.UUID) (CashCuts, error) {
	return scanCashCut(db.QueryRow(ctx, findCashCutByID, id))
}

const findLatestCashCutPeriodEnd = `-- name: FindLatestCashCutPeriodEnd :one
SELECT period_end FROM cash_cuts ORDER BY period_end DESC LIMIT 1
`

func (q *Queries) FindLatestCashCutPeriodEnd(ctx context.Context, db DBTX) (pgtype.Timestamptz, error) {
	row := db.QueryRow(ctx, findLatestCashCutPeriodEnd)
	var periodEnd pgtype.Timestamptz
	err := row.Scan(&periodEnd)
	return periodEnd, err
}

const listCashCuts = `-- name: ListCashCuts :many
SELECT ` + cashCutColumns + ` FROM cash_cuts
ORDER BY created_at DESC, id DESC
LIMIT $1
`

func (q *Queries) ListCashCuts(ctx context.Context, db DBTX, limit int32) ([]CashCuts, error) {
	rows, err := db.Query(ctx, listCashCuts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CashCuts
	for rows.Next() {
		i, err := scanCashCut(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
