package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/converter"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type CashCutQueries interface {
	InsertCashCut(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertCashCutParams) (uuid.UUID, error)
	LockCashCutPeriods(ctx context.Context, db sqlc.DBTX) error
	FindCashCutByKey(ctx context.Context, db sqlc.DBTX, idempotencyKey string) (sqlc.CashCuts, error)
	FindCashCutByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.CashCuts, error)
	FindLatestCashCutPeriodEnd(ctx context.Context, db sqlc.DBTX) (pgtype.Timestamptz, error)
	ListCashCuts(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.CashCuts, error)
	InsertCompletedIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertCompletedIdempotencyKeyParams) error
}

var ErrCashCutPeriodStale = errors.New("cash cut period start is behind the latest cut")

// TxDB is a connection that can open transactions, e.g. *pgxpool.Pool.
type TxDB interface {
	sqlc.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CashCutStore persists cash cuts in Postgres. The unique idempotency_key
// constraint is what makes the writer safe across processes.
type CashCutStore struct {
	queries CashCutQueries
	db      TxDB
	keyTTL  time.Duration
}

func NewCashCutStore(queries CashCutQueries, db TxDB, keyTTL time.Duration) *CashCutStore {
	return &CashCutStore{
		queries: queries,
		db:      db,
		keyTTL:  keyTTL,
	}
}

func (s *CashCutStore) FindByKey(ctx context.Context, key string) (*cashcut.CashCut, error) {
	row, err := s.queries.FindCashCutByKey(ctx, s.db, key)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find cash cut by key", err)
	}
	return decodeCashCut(row)
}

func (s *CashCutStore) FindByID(ctx context.Context, id uuid.UUID) (*cashcut.CashCut, error) {
	row, err := s.queries.FindCashCutByID(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find cash cut", err)
	}
	return decodeCashCut(row)
}

func (s *CashCutStore) LatestPeriodEnd(ctx context.Context) (*time.Time, error) {
	end, err := s.queries.FindLatestCashCutPeriodEnd(ctx, s.db)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find latest cash cut", err)
	}
	return pgconv.TimePtrFromPgtype(end), nil
}

func (s *CashCutStore) List(ctx context.Context, limit int) ([]*cashcut.CashCut, error) {
	rows, err := s.queries.ListCashCuts(ctx, s.db, int32(limit)) // #nosec G115 -- clamped by the caller
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cash cuts", err)
	}
	cuts := make([]*cashcut.CashCut, 0, len(rows))
	for _, row := range rows {
		cut, err := decodeCashCut(row)
		if err != nil {
			return nil, err
		}
		cuts = append(cuts, cut)
	}
	return cuts, nil
}

// Insert writes the cut and its idempotency_keys row in one transaction. When
// another writer already holds the key, the stored cut is returned instead.
// A cut whose period starts before the latest stored end is rejected with
// CONFLICT so the caller recomputes from the fresh end.
func (s *CashCutStore) Insert(ctx context.Context, cut *cashcut.CashCut) (*cashcut.CashCut, bool, error) {
	params, err := converter.CashCutToInsertParams(cut)
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to encode cash cut", err, infra.KindDBFailure)
	}
	response, err := json.Marshal(cut)
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to encode cash cut response", err, infra.KindDBFailure)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to begin cash cut transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback cash cut transaction", "error", rbErr.Error())
		}
	}()

	if err := s.queries.LockCashCutPeriods(ctx, tx); err != nil {
		return nil, false, infra.WrapRepoErr("failed to lock cash cut periods", err)
	}
	latest, err := s.queries.FindLatestCashCutPeriodEnd(ctx, tx)
	if err != nil && !pgconv.IsNoRows(err) {
		return nil, false, infra.WrapRepoErr("failed to find latest cash cut", err)
	}
	if err == nil && latest.Valid && latest.Time.After(cut.PeriodStart) {
		_ = tx.Rollback(ctx)
		existing, findErr := s.FindByKey(ctx, cut.IdempotencyKey)
		if findErr == nil {
			return existing, false, nil
		}
		if !infra.IsKind(findErr, infra.KindNotFound) {
			return nil, false, findErr
		}
		return nil, false, infra.WrapRepoErr("cash cut period already closed", ErrCashCutPeriodStale, infra.KindConflict)
	}

	id, err := s.queries.InsertCashCut(ctx, tx, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			_ = tx.Rollback(ctx)
			existing, findErr := s.FindByKey(ctx, cut.IdempotencyKey)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, infra.WrapRepoErr("failed to insert cash cut", err)
	}

	err = s.queries.InsertCompletedIdempotencyKey(ctx, tx, sqlc.InsertCompletedIdempotencyKeyParams{
		Key:          ScopedKey(shared.ResourceTypeCashCut, cut.IdempotencyKey),
		ResourceID:   pgconv.UUIDToPgtype(id),
		ResourceType: shared.ResourceTypeCashCut,
		Fingerprint:  cut.IdempotencyKey,
		Response:     response,
		CreatedAt:    pgconv.TimeToPgtype(cut.CreatedAt),
		ExpiresAt:    pgconv.TimeToPgtype(cut.CreatedAt.Add(s.keyTTL)),
	})
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to record cash cut idempotency key", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, infra.WrapRepoErr("failed to commit cash cut", err)
	}
	return cut, true, nil
}

func decodeCashCut(row sqlc.CashCuts) (*cashcut.CashCut, error) {
	cut, err := converter.CashCutFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode cash cut", err, infra.KindDBFailure)
	}
	return cut, nil
}
