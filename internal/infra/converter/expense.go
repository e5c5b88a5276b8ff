package converter

import (
	"coworking-pos/internal/domain/expense"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
)

func ExpenseToCreateParams(e *expense.Expense) sqlc.CreateExpenseParams {
	return sqlc.CreateExpenseParams{
		ID:          e.ID(),
		Category:    e.Category(),
		Description: e.Description(),
		Amount:      pgconv.DecimalToNumeric(e.Amount()),
		SpentAt:     pgconv.TimeToPgtype(e.SpentAt()),
		CreatedBy:   e.CreatedBy(),
		CreatedAt:   pgconv.TimeToPgtype(e.CreatedAt()),
	}
}
