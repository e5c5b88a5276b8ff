package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"coworking-pos/internal/domain/order"
	"coworking-pos/internal/domain/product"
	reqdto "coworking-pos/internal/handler/dto/request"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/usecase/queries"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxIdempotencyKeyLength = 255

var (
	ErrInsufficientStock = errs.New("insufficient stock")
	ErrProductInactive   = errs.New("product inactive")
)

type CreateOrderResult struct {
	Order      *queries.OrderView
	IsReplayed bool
}

type OrderCommands interface {
	// Create places an order. A non-empty idempotencyKey makes retries with
	// the same body return the first order instead of selling twice.
	Create(ctx context.Context, req reqdto.CreateOrderRequest, operatorID uuid.UUID, idempotencyKey string) (*CreateOrderResult, error)
}

type orderCommandsImpl struct {
	uow          shared.UnitOfWork
	idempotency  shared.IdempotencyStore
	orderQueries queries.OrderQueries
	keyTTL       time.Duration
	clock        clock.Clock
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	idempotency shared.IdempotencyStore,
	orderQueries queries.OrderQueries,
	keyTTL time.Duration,
	clk clock.Clock,
) OrderCommands {
	return &orderCommandsImpl{
		uow:          uow,
		idempotency:  idempotency,
		orderQueries: orderQueries,
		keyTTL:       keyTTL,
		clock:        clk,
	}
}

func (c *orderCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateOrderRequest,
	operatorID uuid.UUID,
	idempotencyKey string,
) (*CreateOrderResult, error) {
	if idempotencyKey == "" {
		orderID, err := c.commitOrder(ctx, req, operatorID)
		if err != nil {
			return nil, err
		}
		return c.readBack(ctx, orderID)
	}

	if len(idempotencyKey) > maxIdempotencyKeyLength || strings.ContainsAny(idempotencyKey, " \t\r\n") {
		return nil, errs.ErrIdempotencyKeyInvalid
	}
	// Keys are client-chosen, so they are only unique per operator.
	scopedKey := operatorID.String() + ":" + idempotencyKey

	fingerprint, err := requestFingerprint(req)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	begin, err := c.idempotency.Begin(ctx, shared.ResourceTypeOrder, scopedKey, fingerprint, c.keyTTL)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch begin.State {
	case shared.IdempotencyStateReplay:
		if begin.ResourceID == nil {
			return nil, errs.Mark(errs.New("completed request missing order id"), errs.ErrIdempotencyCheckFailed)
		}
		view, err := c.orderQueries.Get(ctx, *begin.ResourceID)
		if err != nil {
			return nil, err
		}
		return &CreateOrderResult{Order: view, IsReplayed: true}, nil

	case shared.IdempotencyStateInProgress:
		return nil, errs.ErrIdempotencyInProgress

	case shared.IdempotencyStateConflict:
		return nil, errs.ErrIdempotencyMismatch

	case shared.IdempotencyStateNew:
	default:
		return nil, errs.Mark(errs.Newf("unknown idempotency state %q", begin.State), errs.ErrIdempotencyCheckFailed)
	}

	orderID, err := c.commitOrder(ctx, req, operatorID)
	if err != nil {
		// Nothing was sold; free the key so the client can retry with it.
		releaseCtx := context.WithoutCancel(ctx)
		if releaseErr := c.idempotency.Release(releaseCtx, shared.ResourceTypeOrder, scopedKey); releaseErr != nil {
			slog.Warn("failed to release idempotency key", "key", scopedKey, "error", releaseErr.Error())
		}
		return nil, err
	}

	// The sale is committed from here on. The key must never be released, so a
	// retry replays this order even when the read-back below fails.
	completeCtx := context.WithoutCancel(ctx)
	if err := c.idempotency.Complete(completeCtx, shared.ResourceTypeOrder, scopedKey, orderID, nil, c.keyTTL); err != nil {
		// Leaving the key in processing is safer than a duplicate sale.
		slog.Error("failed to complete idempotency key", "key", scopedKey, "order_id", orderID, "error", err.Error())
	}

	return c.readBack(ctx, orderID)
}

// readBack loads the stored order so the view carries the persisted item rows.
func (c *orderCommandsImpl) readBack(ctx context.Context, orderID uuid.UUID) (*CreateOrderResult, error) {
	view, err := c.orderQueries.Get(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CreateOrderResult{Order: view}, nil
}

func (c *orderCommandsImpl) commitOrder(ctx context.Context, req reqdto.CreateOrderRequest, operatorID uuid.UUID) (uuid.UUID, error) {
	method, err := req.Method()
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	productIDs, quantities := req.Quantities()
	// Lock rows in id order so concurrent orders cannot deadlock.
	lockOrder := slices.Clone(productIDs)
	slices.SortFunc(lockOrder, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })

	var orderID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked := make(map[uuid.UUID]*product.Product, len(lockOrder))
		for _, id := range lockOrder {
			p, err := tx.Products().FindForUpdate(ctx, id)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.ErrProductNotFound
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if err := p.CanSell(quantities[id]); err != nil {
				return markSaleError(err)
			}
			locked[id] = p
		}

		items := make([]order.Item, 0, len(productIDs))
		for _, id := range productIDs {
			p := locked[id]
			items = append(items, order.Item{
				ProductID: id,
				Name:      p.Name(),
				Quantity:  quantities[id],
				UnitPrice: p.Price(),
				UnitCost:  p.Cost(),
			})
		}

		o, err := order.NewOrder(items, method, operatorID, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		for _, id := range lockOrder {
			if err := tx.Products().DecrementStock(ctx, id, quantities[id]); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.Mark(err, ErrInsufficientStock)
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Orders().Create(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		orderID = o.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return orderID, nil
}

func markSaleError(err error) error {
	switch {
	case errors.Is(err, product.ErrInsufficientStock):
		return errs.Mark(err, ErrInsufficientStock)
	case errors.Is(err, product.ErrInactive):
		return errs.Mark(err, ErrProductInactive)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

// requestFingerprint hashes the merged item quantities so the same basket
// listed in a different line order still matches.
func requestFingerprint(req reqdto.CreateOrderRequest) (string, error) {
	productIDs, quantities := req.Quantities()
	slices.SortFunc(productIDs, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })

	type line struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}
	canonical := struct {
		Items         []line `json:"items"`
		PaymentMethod string `json:"payment_method"`
	}{
		Items:         make([]line, 0, len(productIDs)),
		PaymentMethod: strings.ToLower(strings.TrimSpace(req.PaymentMethod)),
	}
	for _, id := range productIDs {
		canonical.Items = append(canonical.Items, line{ProductID: id, Quantity: quantities[id]})
	}

	data, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
