package readstore

import (
	"context"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/queries"
)

type ExpenseReadQueries interface {
	ListExpensesByPeriod(ctx context.Context, db sqlc.DBTX, arg sqlc.ListExpensesByPeriodParams) ([]sqlc.Expenses, error)
}

type ExpenseReadStore struct {
	queries ExpenseReadQueries
	db      sqlc.DBTX
}

func NewExpenseReadStore(queries ExpenseReadQueries, db sqlc.DBTX) *ExpenseReadStore {
	return &ExpenseReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ExpenseReadStore) ListByPeriod(ctx context.Context, period queries.Period, limit int) ([]*queries.ExpenseView, error) {
	rows, err := r.queries.ListExpensesByPeriod(ctx, r.db, sqlc.ListExpensesByPeriodParams{
		From:  pgconv.TimeToPgtype(period.From),
		To:    pgconv.TimeToPgtype(period.To),
		Limit: int32(limit), // #nosec G115 -- clamped by queries.ClampLimit
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expenses", err)
	}
	views := make([]*queries.ExpenseView, 0, len(rows))
	for _, row := range rows {
		amount, err := pgconv.DecimalFromNumeric(row.Amount)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid expense amount", err, infra.KindDBFailure)
		}
		views = append(views, &queries.ExpenseView{
			ID:          row.ID,
			Category:    row.Category,
			Description: row.Description,
			Amount:      amount,
			SpentAt:     pgconv.TimeFromPgtype(row.SpentAt),
			CreatedBy:   row.CreatedBy,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return views, nil
}
