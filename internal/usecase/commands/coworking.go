package commands

import (
	"context"
	"errors"

	"coworking-pos/internal/domain/coworking"
	"coworking-pos/internal/domain/payment"
	reqdto "coworking-pos/internal/handler/dto/request"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/usecase/queries"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrSessionAlreadyClosed = errs.New("coworking session already closed")

type CoworkingCommands interface {
	Start(ctx context.Context, req reqdto.StartSessionRequest, operatorID uuid.UUID) (*queries.CoworkingSessionView, error)
	Close(ctx context.Context, id uuid.UUID, req reqdto.CloseSessionRequest) (*queries.CoworkingSessionView, error)
}

type coworkingCommandsImpl struct {
	uow              shared.UnitOfWork
	coworkingQueries queries.CoworkingQueries
	clock            clock.Clock
}

func NewCoworkingCommands(uow shared.UnitOfWork, coworkingQueries queries.CoworkingQueries, clk clock.Clock) CoworkingCommands {
	return &coworkingCommandsImpl{
		uow:              uow,
		coworkingQueries: coworkingQueries,
		clock:            clk,
	}
}

func (c *coworkingCommandsImpl) Start(ctx context.Context, req reqdto.StartSessionRequest, operatorID uuid.UUID) (*queries.CoworkingSessionView, error) {
	session, err := coworking.StartSession(req.CustomerName, req.HourlyRate, operatorID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.CoworkingSessions().Create(ctx, session)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.coworkingQueries.Get(ctx, session.ID())
}

func (c *coworkingCommandsImpl) Close(ctx context.Context, id uuid.UUID, req reqdto.CloseSessionRequest) (*queries.CoworkingSessionView, error) {
	method, err := payment.NewMethod(req.PaymentMethod)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		session, err := tx.CoworkingSessions().FindForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrCoworkingSessionNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := session.Close(c.clock.Now(), method); err != nil {
			if errors.Is(err, coworking.ErrAlreadyClosed) {
				return errs.Mark(err, ErrSessionAlreadyClosed)
			}
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.CoworkingSessions().Close(ctx, session); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrSessionAlreadyClosed)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.coworkingQueries.Get(ctx, id)
}
