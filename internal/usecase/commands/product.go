package commands

import (
	"context"

	reqdto "coworking-pos/internal/handler/dto/request"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/usecase/queries"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductCommands interface {
	Create(ctx context.Context, req reqdto.CreateProductRequest) (*queries.ProductView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateProductRequest) (*queries.ProductView, error)
}

type productCommandsImpl struct {
	uow            shared.UnitOfWork
	productQueries queries.ProductQueries
	clock          clock.Clock
}

func NewProductCommands(uow shared.UnitOfWork, productQueries queries.ProductQueries, clk clock.Clock) ProductCommands {
	return &productCommandsImpl{
		uow:            uow,
		productQueries: productQueries,
		clock:          clk,
	}
}

func (c *productCommandsImpl) Create(ctx context.Context, req reqdto.CreateProductRequest) (*queries.ProductView, error) {
	p, err := req.ToDomain(c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Create(ctx, p)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.productQueries.Get(ctx, p.ID())
}

func (c *productCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateProductRequest) (*queries.ProductView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Products().FindForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrProductNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		next, err := current.Apply(req.ToPatch(), c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Products().Update(ctx, next); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrProductNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.productQueries.Get(ctx, id)
}
