package repository

import (
	"context"
	"time"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyKeyParams) (int64, error)
	GetIdempotencyKey(ctx context.Context, db sqlc.DBTX, key string) (sqlc.IdempotencyKeys, error)
	ClaimExpiredIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimExpiredIdempotencyKeyParams) (int64, error)
	CompleteIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteIdempotencyKeyParams) (int64, error)
	DeleteProcessingIdempotencyKey(ctx context.Context, db sqlc.DBTX, key string) (int64, error)
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error)
}

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"
)

// ScopedKey namespaces a key by resource type so one table serves every resource.
func ScopedKey(resourceType, key string) string {
	return resourceType + ":" + key
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      sqlc.DBTX
	clock   clock.Clock
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db sqlc.DBTX, clk clock.Clock) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
		clock:   clk,
	}
}

func (r *IdempotencyRepository) Begin(ctx context.Context, resourceType, key, fingerprint string, ttl time.Duration) (shared.IdempotencyBeginResult, error) {
	scoped := ScopedKey(resourceType, key)
	now := r.clock.Now()

	// A second pass covers a row swept between insert and read.
	for attempt := 0; attempt < 2; attempt++ {
		n, err := r.queries.TryInsertIdempotencyKey(ctx, r.db, sqlc.TryInsertIdempotencyKeyParams{
			Key:          scoped,
			ResourceType: resourceType,
			Fingerprint:  fingerprint,
			CreatedAt:    pgconv.TimeToPgtype(now),
			ExpiresAt:    pgconv.TimeToPgtype(now.Add(ttl)),
		})
		if err != nil {
			return shared.IdempotencyBeginResult{}, infra.WrapRepoErr("failed to try insert idempotency key", err)
		}
		if n == 1 {
			return shared.IdempotencyBeginResult{State: shared.IdempotencyStateNew}, nil
		}

		row, err := r.queries.GetIdempotencyKey(ctx, r.db, scoped)
		if err != nil {
			if pgconv.IsNoRows(err) {
				continue
			}
			return shared.IdempotencyBeginResult{}, infra.WrapRepoErr("failed to get idempotency key", err)
		}

		if !now.Before(pgconv.TimeFromPgtype(row.ExpiresAt)) {
			claimed, err := r.queries.ClaimExpiredIdempotencyKey(ctx, r.db, sqlc.ClaimExpiredIdempotencyKeyParams{
				Key:         scoped,
				Fingerprint: fingerprint,
				Now:         pgconv.TimeToPgtype(now),
				ExpiresAt:   pgconv.TimeToPgtype(now.Add(ttl)),
			})
			if err != nil {
				return shared.IdempotencyBeginResult{}, infra.WrapRepoErr("failed to claim expired idempotency key", err)
			}
			if claimed == 1 {
				return shared.IdempotencyBeginResult{State: shared.IdempotencyStateNew}, nil
			}
			return shared.IdempotencyBeginResult{State: shared.IdempotencyStateInProgress}, nil
		}

		if row.Fingerprint != fingerprint {
			return shared.IdempotencyBeginResult{State: shared.IdempotencyStateConflict}, nil
		}
		if row.Status == statusCompleted {
			return shared.IdempotencyBeginResult{
				State:      shared.IdempotencyStateReplay,
				ResourceID: pgconv.UUIDPtrFromPgtype(row.ResourceID),
				Response:   row.Response,
			}, nil
		}
		return shared.IdempotencyBeginResult{State: shared.IdempotencyStateInProgress}, nil
	}

	return shared.IdempotencyBeginResult{State: shared.IdempotencyStateInProgress}, nil
}

// Complete keeps the original expiry; ttl only matters for stores without one.
func (r *IdempotencyRepository) Complete(ctx context.Context, resourceType, key string, resourceID uuid.UUID, response []byte, _ time.Duration) error {
	n, err := r.queries.CompleteIdempotencyKey(ctx, r.db, sqlc.CompleteIdempotencyKeyParams{
		Key:        ScopedKey(resourceType, key),
		ResourceID: pgconv.UUIDToPgtype(resourceID),
		Response:   response,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("idempotency key not in processing state", nil, infra.KindNotFound)
	}
	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, resourceType, key string) error {
	if _, err := r.queries.DeleteProcessingIdempotencyKey(ctx, r.db, ScopedKey(resourceType, key)); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return count, nil
}
