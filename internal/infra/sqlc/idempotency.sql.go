package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const tryInsertIdempotencyKey = `-- name: TryInsertIdempotencyKey :execrows
INSERT INTO idempotency_keys (key, resource_type, fingerprint, status, created_at, expires_at)
VALUES ($1, $2, $3, 'processing', $4, $5)
ON CONFLICT (key) DO NOTHING
`

type TryInsertIdempotencyKeyParams struct {
	Key          string             `json:"key"`
	ResourceType string             `json:"resource_type"`
	Fingerprint  string             `json:"fingerprint"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	ExpiresAt    pgtype.Timestamptz `json:"expires_at"`
}

func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, tryInsertIdempotencyKey,
		arg.Key,
		arg.ResourceType,
		arg.Fingerprint,
		arg.CreatedAt,
		arg.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getIdempotencyKey = `-- name: GetIdempotencyKey :one
SELECT key, resource_id, resource_type, fingerprint, status, response, created_at, expires_at
FROM idempotency_keys
WHERE key = $1
`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, key string) (IdempotencyKeys, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, key)
	var i IdempotencyKeys
	err := row.Scan(
		&i.Key,
		&i.ResourceID,
		&i.ResourceType,
		&i.Fingerprint,
		&i.Status,
		&i.Response,
		&i.CreatedAt,
		&i.ExpiresAt,
	)
	return i, err
}

const claimExpiredIdempotencyKey = `-- name: ClaimExpiredIdempotencyKey :execrows
UPDATE idempotency_keys
SET fingerprint = $2, status = 'processing', resource_id = NULL, response = NULL,
    created_at = $3, expires_at = $4
WHERE key = $1 AND expires_at <= $3
`

type ClaimExpiredIdempotencyKeyParams struct {
	Key         string             `json:"key"`
	Fingerprint string             `json:"fingerprint"`
	Now         pgtype.Timestamptz `json:"now"`
	ExpiresAt   pgtype.Timestamptz `json:"expires_at"`
}

func (q *Queries) ClaimExpiredIdempotencyKey(ctx context.Context, db DBTX, arg ClaimExpiredIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, claimExpiredIdempotencyKey,
		arg.Key,
		arg.Fingerprint,
		arg.Now,
		arg.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const completeIdempotencyKey = `-- name: CompleteIdempotencyKey :execrows
UPDATE idempotency_keys
SET status = 'completed', resource_id = $2, response = $3
WHERE key = $1 AND status = 'processing'
`

type CompleteIdempotencyKeyParams struct {
	Key        string      `json:"key"`
	ResourceID pgtype.UUID `json:"resource_id"`
	Response   []byte      `json:"response"`
}

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db DBTX, arg CompleteIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, completeIdempotencyKey, arg.Key, arg.ResourceID, arg.Response)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const insertCompletedIdempotencyKey = `-- name: InsertCompletedIdempotencyKey :exec
INSERT INTO idempotency_keys (key, resource_id, resource_type, fingerprint, status, response, created_at, expires_at)
VALUES ($1, $2, $3, $4, 'completed', $5, $6, $7)
ON CONFLICT (key) DO NOTHING
`

type InsertCompletedIdempotencyKeyParams struct {
	Key          string             `json:"key"`
	ResourceID   pgtype.UUID        `json:"resource_id"`
	ResourceType string             `json:"resource_type"`
	Fingerprint  string             `json:"fingerprint"`
	Response     []byte             `json:"response"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	ExpiresAt    pgtype.Timestamptz `json:"expires_at"`
}

func (q *Queries) InsertCompletedIdempotencyKey(ctx context.Context, db DBTX, arg InsertCompletedIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, insertCompletedIdempotencyKey,
		arg.Key,
		arg.ResourceID,
		arg.ResourceType,
		arg.Fingerprint,
		arg.Response,
		arg.CreatedAt,
		arg.ExpiresAt,
	)
	return err
}

const deleteProcessingIdempotencyKey = `-- name: DeleteProcessingIdempotencyKey :execrows
DELETE FROM idempotency_keys WHERE key = $1 AND status = 'processing'
`

func (q *Queries) DeleteProcessingIdempotencyKey(ctx context.Context, db DBTX, key string) (int64, error) {
	result, err := db.Exec(ctx, deleteProcessingIdempotencyKey, key)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteExpiredIdempotencyKeys = `-- name: DeleteExpiredIdempotencyKeys :execrows
DELETE FROM idempotency_keys WHERE expires_at <= $1
`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX, now pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, deleteExpiredIdempotencyKeys, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
