package queries

import (
	"context"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

type CashCutQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*cashcut.CashCut, error)
	// List returns cuts newest first.
	List(ctx context.Context, limit int) ([]*cashcut.CashCut, error)
	Export(ctx context.Context, id uuid.UUID) (*CashCutExport, error)
}

type CashCutReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*cashcut.CashCut, error)
	List(ctx context.Context, limit int) ([]*cashcut.CashCut, error)
}

type CashCutRenderer interface {
	Render(cut *cashcut.CashCut) ([]byte, error)
}

type CashCutExport struct {
	FileName string
	Content  []byte
}

type cashCutQueriesImpl struct {
	store    CashCutReadStore
	renderer CashCutRenderer
	fileName func(*cashcut.CashCut) string
}

func NewCashCutQueries(store CashCutReadStore, renderer CashCutRenderer, fileName func(*cashcut.CashCut) string) CashCutQueries {
	return &cashCutQueriesImpl{
		store:    store,
		renderer: renderer,
		fileName: fileName,
	}
}

func (q *cashCutQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*cashcut.CashCut, error) {
	cut, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCashCutNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return cut, nil
}

func (q *cashCutQueriesImpl) List(ctx context.Context, limit int) ([]*cashcut.CashCut, error) {
	cuts, err := q.store.List(ctx, ClampLimit(limit))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return cuts, nil
}

func (q *cashCutQueriesImpl) Export(ctx context.Context, id uuid.UUID) (*CashCutExport, error) {
	cut, err := q.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := q.renderer.Render(cut)
	if err != nil {
		return nil, errs.Wrap(err, "failed to render cash cut export")
	}
	return &CashCutExport{FileName: q.fileName(cut), Content: content}, nil
}
