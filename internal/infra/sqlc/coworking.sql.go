package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const coworkingColumns = `id, customer_name, started_at, ended_at, hourly_rate, total, payment_method, status, created_by`

func scanCoworkingSession(row interface{ Scan(...any) error }) (CoworkingSessions, error) {
	var i CoworkingSessions
	err := row.Scan(
		&i.ID,
		&i.CustomerName,
		&i.StartedAt,
		&i.EndedAt,
		&i.HourlyRate,
		&i.Total,
		&i.PaymentMethod,
		&i.Status,
		&i.CreatedBy,
	)
	return i, err
}

const createCoworkingSession = `-- name: CreateCoworkingSession :exec
INSERT INTO coworking_sessions (id, customer_name, started_at, hourly_rate, total, status, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateCoworkingSessionParams struct {
	ID           uuid.UUID          `json:"id"`
	CustomerName string             `json:"customer_name"`
	StartedAt    pgtype.Timestamptz `json:"started_at"`
	HourlyRate   pgtype.Numeric     `json:"hourly_rate"`
	Total        pgtype.Numeric     `json:"total"`
	Status       string             `json:"status"`
	CreatedBy    uuid.UUID          `json:"created_by"`
}

func (q *Queries) CreateCoworkingSession(ctx context.Context, db DBTX, arg CreateCoworkingSessionParams) error {
	_, err := db.Exec(ctx, createCoworkingSession,
		arg.ID,
		arg.CustomerName,
		arg.StartedAt,
		arg.HourlyRate,
		arg.Total,
		arg.Status,
		arg.CreatedBy,
	)
	return err
}

const closeCoworkingSession = `-- name: CloseCoworkingSession :execrows
UPDATE coworking_sessions
SET ended_at = $2, total = $3, payment_method = $4, status = 'closed'
WHERE id = $1 AND status = 'open'
`

type CloseCoworkingSessionParams struct {
	ID            uuid.UUID          `json:"id"`
	EndedAt       pgtype.Timestamptz `json:"ended_at"`
	Total         pgtype.Numeric     `json:"total"`
	PaymentMethod pgtype.Text        `json:"payment_method"`
}

func (q *Queries) CloseCoworkingSession(ctx context.Context, db DBTX, arg CloseCoworkingSessionParams) (int64, error) {
	result, err := db.Exec(ctx, closeCoworkingSession,
		arg.ID,
		arg.EndedAt,
		arg.Total,
		arg.PaymentMethod,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const findCoworkingSessionByID = `-- name: FindCoworkingSessionByID :one
SELECT ` + coworkingColumns + ` FROM coworking_sessions WHERE id = $1
`

func (q *Queries) FindCoworkingSessionByID(ctx context.Context, db DBTX, id uuid.UUID) (CoworkingSessions, error) {
	return scanCoworkingSession(db.QueryRow(ctx, findCoworkingSessionByID, id))
}

const findCoworkingSessionByIDForUpdate = `-- name: FindCoworkingSessionByIDForUpdate :one
SELECT ` + coworkingColumns + ` FROM coworking_sessions WHERE id = $1 FOR UPDATE
`

func (q *Queries) FindCoworkingSessionByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (CoworkingSessions, error) {
	return scanCoworkingSession(db.QueryRow(ctx, findCoworkingSessionByIDForUpdate, id))
}

const listCoworkingSessions = `-- name: ListCoworkingSessions :many
SELECT ` + coworkingColumns + ` FROM coworking_sessions
WHERE ($1::text = '' OR status = $1)
ORDER BY started_at DESC, id DESC
LIMIT $2
`

type ListCoworkingSessionsParams struct {
	Status string `json:"status"`
	Limit  int32  `json:"limit"`
}

func (q *Queries) ListCoworkingSessions(ctx context.Context, db DBTX, arg ListCoworkingSessionsParams) ([]CoworkingSessions, error) {
	rows, err := db.Query(ctx, listCoworkingSessions, arg.Status, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CoworkingSessions
	for rows.Next() {
		i, err := scanCoworkingSession(rows)
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
