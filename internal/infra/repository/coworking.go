package repository

import (
	"context"

	"coworking-pos/internal/domain/coworking"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/converter"
	"coworking-pos/internal/infra/sqlc"

	"github.com/google/uuid"
)

type CoworkingWriteQueries interface {
	CreateCoworkingSession(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCoworkingSessionParams) error
	FindCoworkingSessionByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.CoworkingSessions, error)
	CloseCoworkingSession(ctx context.Context, db sqlc.DBTX, arg sqlc.CloseCoworkingSessionParams) (int64, error)
}

type CoworkingSessionRepository struct {
	queries CoworkingWriteQueries
	db      sqlc.DBTX
}

func NewCoworkingSessionRepository(queries CoworkingWriteQueries, db sqlc.DBTX) *CoworkingSessionRepository {
	return &CoworkingSessionRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CoworkingSessionRepository) Create(ctx context.Context, s *coworking.Session) error {
	if err := r.queries.CreateCoworkingSession(ctx, r.db, converter.CoworkingToCreateParams(s)); err != nil {
		return infra.WrapRepoErr("failed to create coworking session", err)
	}
	return nil
}

func (r *CoworkingSessionRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*coworking.Session, error) {
	row, err := r.queries.FindCoworkingSessionByIDForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock coworking session", err)
	}
	s, err := converter.CoworkingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode coworking session", err, infra.KindDBFailure)
	}
	return s, nil
}

func (r *CoworkingSessionRepository) Close(ctx context.Context, s *coworking.Session) error {
	n, err := r.queries.CloseCoworkingSession(ctx, r.db, converter.CoworkingToCloseParams(s))
	if err != nil {
		return infra.WrapRepoErr("failed to close coworking session", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("coworking session already closed", nil, infra.KindConflict)
	}
	return nil
}
