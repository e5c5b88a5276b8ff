package readstore

import (
	"context"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/queries"

	"github.com/google/uuid"
)

type CoworkingReadQueries interface {
	FindCoworkingSessionByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.CoworkingSessions, error)
	ListCoworkingSessions(ctx context.Context, db sqlc.DBTX, arg sqlc.ListCoworkingSessionsParams) ([]sqlc.CoworkingSessions, error)
}

type CoworkingReadStore struct {
	queries CoworkingReadQueries
	db      sqlc.DBTX
}

func NewCoworkingReadStore(queries CoworkingReadQueries, db sqlc.DBTX) *CoworkingReadStore {
	return &CoworkingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CoworkingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CoworkingSessionView, error) {
	row, err := r.queries.FindCoworkingSessionByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find coworking session", err)
	}
	return toCoworkingSessionView(row)
}

func (r *CoworkingReadStore) List(ctx context.Context, status string, limit int) ([]*queries.CoworkingSessionView, error) {
	rows, err := r.queries.ListCoworkingSessions(ctx, r.db, sqlc.ListCoworkingSessionsParams{
		Status: status,
		Limit:  int32(limit), // #nosec G115 -- clamped by queries.ClampLimit
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coworking sessions", err)
	}
	views := make([]*queries.CoworkingSessionView, 0, len(rows))
	for _, row := range rows {
		v, err := toCoworkingSessionView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func toCoworkingSessionView(row sqlc.CoworkingSessions) (*queries.CoworkingSessionView, error) {
	rate, err := pgconv.DecimalFromNumeric(row.HourlyRate)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid hourly rate", err, infra.KindDBFailure)
	}
	total, err := pgconv.DecimalFromNumeric(row.Total)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid session total", err, infra.KindDBFailure)
	}
	return &queries.CoworkingSessionView{
		ID:            row.ID,
		CustomerName:  row.CustomerName,
		StartedAt:     pgconv.TimeFromPgtype(row.StartedAt),
		EndedAt:       pgconv.TimePtrFromPgtype(row.EndedAt),
		HourlyRate:    rate,
		Total:         total,
		PaymentMethod: pgconv.StringPtrFromPgtype(row.PaymentMethod),
		Status:        row.Status,
		CreatedBy:     row.CreatedBy,
	}, nil
}
