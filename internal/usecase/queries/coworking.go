package queries

import (
	"context"

	"coworking-pos/internal/domain/coworking"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

type CoworkingQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*CoworkingSessionView, error)
	// List filters by status when it is non-empty.
	List(ctx context.Context, status string, limit int) ([]*CoworkingSessionView, error)
}

type CoworkingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CoworkingSessionView, error)
	List(ctx context.Context, status string, limit int) ([]*CoworkingSessionView, error)
}

type coworkingQueriesImpl struct {
	readStore CoworkingReadStore
}

func NewCoworkingQueries(readStore CoworkingReadStore) CoworkingQueries {
	return &coworkingQueriesImpl{readStore: readStore}
}

func (q *coworkingQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*CoworkingSessionView, error) {
	s, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCoworkingSessionNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return s, nil
}

func (q *coworkingQueriesImpl) List(ctx context.Context, status string, limit int) ([]*CoworkingSessionView, error) {
	if status != "" {
		if _, err := coworking.NewStatus(status); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}
	sessions, err := q.readStore.List(ctx, status, ClampLimit(limit))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return sessions, nil
}
