package repository

import (
	"context"

	"coworking-pos/internal/domain/expense"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/converter"
	"coworking-pos/internal/infra/sqlc"
)

type ExpenseWriteQueries interface {
	CreateExpense(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateExpenseParams) error
}

type ExpenseRepository struct {
	queries ExpenseWriteQueries
	db      sqlc.DBTX
}

func NewExpenseRepository(queries ExpenseWriteQueries, db sqlc.DBTX) *ExpenseRepository {
	return &ExpenseRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	if err := r.queries.CreateExpense(ctx, r.db, converter.ExpenseToCreateParams(e)); err != nil {
		return infra.WrapRepoErr("failed to create expense", err)
	}
	return nil
}
