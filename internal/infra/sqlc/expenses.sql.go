package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createExpense = `-- name: CreateExpense :exec
INSERT INTO expenses (id, category, description, amount, spent_at, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateExpenseParams struct {
	ID          uuid.UUID          `json:"id"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Amount      pgtype.Numeric     `json:"amount"`
	SpentAt     pgtype.Timestamptz `json:"spent_at"`
	CreatedBy   uuid.UUID          `json:"created_by"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateExpense(ctx context.Context, db DBTX, arg CreateExpenseParams) error {
	_, err := db.Exec(ctx, createExpense,
		arg.ID,
		arg.Category,
		arg.Description,
		arg.Amount,
		arg.SpentAt,
		arg.CreatedBy,
		arg.CreatedAt,
	)
	return err
}

const findExpenseByID = `-- name: FindExpenseByID :one
SELECT id, category, description, amount, spent_at, created_by, created_at
FROM expenses
WHERE id = $1
`

func (q *Queries) FindExpenseByID(ctx context.Context, db DBTX, id uuid.UUID) (Expenses, error) {
	row := db.QueryRow(ctx, findExpenseByID, id)
	var i Expenses
	err := row.Scan(
		&i.ID,
		&i.Category,
		&i.Description,
		&i.Amount,
		&i.SpentAt,
		&i.CreatedBy,
		&i.CreatedAt,
	)
	return i, err
}

const listExpensesByPeriod = `-- name: ListExpensesByPeriod :many
SELECT id, category, description, amount, spent_at, created_by, created_at
FROM expenses
WHERE spent_at >= $1 AND spent_at < $2
ORDER BY spent_at DESC, id DESC
LIMIT $3
`

type ListExpensesByPeriodParams struct {
	From  pgtype.Timestamptz `json:"from"`
	To    pgtype.Timestamptz `json:"to"`
	Limit int32              `json:"limit"`
}

func (q *Queries) ListExpensesByPeriod(ctx context.Context, db DBTX, arg ListExpensesByPeriodParams) ([]Expenses, error) {
	rows, err := db.Query(ctx, listExpensesByPeriod, arg.From, arg.To, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expenses
	for rows.Next() {
		var i Expenses
		if err := rows.Scan(
			&i.ID,
			&i.Category,
			&i.Description,
			&i.Amount,
			&i.SpentAt,
			&i.CreatedBy,
			&i.CreatedAt,
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
