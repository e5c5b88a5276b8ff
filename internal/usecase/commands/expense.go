package commands

import (
	"context"
	"time"

	"coworking-pos/internal/domain/expense"
	reqdto "coworking-pos/internal/handler/dto/request"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/usecase/queries"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExpenseCommands interface {
	Create(ctx context.Context, req reqdto.CreateExpenseRequest, operatorID uuid.UUID) (*queries.ExpenseView, error)
}

type expenseCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewExpenseCommands(uow shared.UnitOfWork, clk clock.Clock) ExpenseCommands {
	return &expenseCommandsImpl{
		uow:   uow,
		clock: clk,
	}
}

func (c *expenseCommandsImpl) Create(ctx context.Context, req reqdto.CreateExpenseRequest, operatorID uuid.UUID) (*queries.ExpenseView, error) {
	var spentAt time.Time
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	e, err := expense.NewExpense(req.Category, req.Description, req.Amount, spentAt, operatorID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Expenses().Create(ctx, e)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &queries.ExpenseView{
		ID:          e.ID(),
		Category:    e.Category(),
		Description: e.Description(),
		Amount:      e.Amount(),
		SpentAt:     e.SpentAt(),
		CreatedBy:   e.CreatedBy(),
		CreatedAt:   e.CreatedAt(),
	}, nil
}
