package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PeriodParams struct {
	Start pgtype.Timestamptz `json:"start"`
	End   pgtype.Timestamptz `json:"end"`
}

const listSaleLinesInPeriod = `-- name: ListSaleLinesInPeriod :many
SELECT o.id, o.payment_method, o.created_at, o.total, o.cost_total,
       i.product_id, i.name, i.quantity, i.unit_price
FROM orders o
JOIN order_items i ON i.order_id = o.id
WHERE o.created_at > $1 AND o.created_at <= $2
ORDER BY o.created_at, o.id, i.id
`

type ListSaleLinesInPeriodRow struct {
	OrderID       uuid.UUID          `json:"order_id"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	Total         pgtype.Numeric     `json:"total"`
	CostTotal     pgtype.Numeric     `json:"cost_total"`
	ProductID     uuid.UUID          `json:"product_id"`
	Name          string             `json:"name"`
	Quantity      int32              `json:"quantity"`
	UnitPrice     pgtype.Numeric     `json:"unit_price"`
}

func (q *Queries) ListSaleLinesInPeriod(ctx context.Context, db DBTX, arg PeriodParams) ([]ListSaleLinesInPeriodRow, error) {
	rows, err := db.Query(ctx, listSaleLinesInPeriod, arg.Start, arg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListSaleLinesInPeriodRow
	for rows.Next() {
		var i ListSaleLinesInPeriodRow
		if err := rows.Scan(
			&i.OrderID,
			&i.PaymentMethod,
			&i.CreatedAt,
			&i.Total,
			&i.CostTotal,
			&i.ProductID,
			&i.Name,
			&i.Quantity,
			&i.UnitPrice,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listClosedSessionsInPeriod = `-- name: ListClosedSessionsInPeriod :many
SELECT id, payment_method, ended_at, total
FROM coworking_sessions
WHERE status = 'closed' AND ended_at > $1 AND ended_at <= $2
ORDER BY ended_at, id
`

type ListClosedSessionsInPeriodRow struct {
	ID            uuid.UUID          `json:"id"`
	PaymentMethod pgtype.Text        `json:"payment_method"`
	EndedAt       pgtype.Timestamptz `json:"ended_at"`
	Total         pgtype.Numeric     `json:"total"`
}

func (q *Queries) ListClosedSessionsInPeriod(ctx context.Context, db DBTX, arg PeriodParams) ([]ListClosedSessionsInPeriodRow, error) {
	rows, err := db.Query(ctx, listClosedSessionsInPeriod, arg.Start, arg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListClosedSessionsInPeriodRow
	for rows.Next() {
		var i ListClosedSessionsInPeriodRow
		if err := rows.Scan(
			&i.ID,
			&i.PaymentMethod,
			&i.EndedAt,
			&i.Total,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listExpenseAmountsInPeriod = `-- name: ListExpenseAmountsInPeriod :many
SELECT amount
FROM expenses
WHERE spent_at > $1 AND spent_at <= $2
`

func (q *Queries) ListExpenseAmountsInPeriod(ctx context.Context, db DBTX, arg PeriodParams) ([]pgtype.Numeric, error) {
	rows, err := db.Query(ctx, listExpenseAmountsInPeriod, arg.Start, arg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []pgtype.Numeric
	for rows.Next() {
		var amount pgtype.Numeric
		if err := rows.Scan(&amount); err != nil {
			return nil, err
		}
		items = append(items, amount)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
