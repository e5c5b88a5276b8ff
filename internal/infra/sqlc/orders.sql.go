package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createOrder = `-- name: CreateOrder :exec
INSERT INTO orders (id, payment_method, total, cost_total, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateOrderParams struct {
	ID            uuid.UUID          `json:"id"`
	PaymentMethod string             `json:"payment_method"`
	Total         pgtype.Numeric     `json:"total"`
	CostTotal     pgtype.Numeric     `json:"cost_total"`
	CreatedBy     uuid.UUID          `json:"created_by"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateOrder(ctx context.Context, db DBTX, arg CreateOrderParams) error {
	_, err := db.Exec(ctx, createOrder,
		arg.ID,
		arg.PaymentMethod,
		arg.Total,
		arg.CostTotal,
		arg.CreatedBy,
		arg.CreatedAt,
	)
	return err
}

const createOrderItem = `-- name: CreateOrderItem :exec
INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, unit_cost)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateOrderItemParams struct {
	OrderID   uuid.UUID      `json:"order_id"`
	ProductID uuid.UUID      `json:"product_id"`
	Name      string         `json:"name"`
	Quantity  int32          `json:"quantity"`
	UnitPrice pgtype.Numeric `json:"unit_price"`
	UnitCost  pgtype.Numeric `json:"unit_cost"`
}

func (q *Queries) CreateOrderItem(ctx context.Context, db DBTX, arg CreateOrderItemParams) error {
	_, err := db.Exec(ctx, createOrderItem,
		arg.OrderID,
		arg.ProductID,
		arg.Name,
		arg.Quantity,
		arg.UnitPrice,
		arg.UnitCost,
	)
	return err
}

const findOrderByID = `-- name: FindOrderByID :one
SELECT id, payment_method, total, cost_total, created_by, created_at
FROM orders
WHERE id = $1
`

func (q *Queries) FindOrderByID(ctx context.Context, db DBTX, id uuid.UUID) (Orders, error) {
	row := db.QueryRow(ctx, findOrderByID, id)
	var i Orders
	err := row.Scan(
		&i.ID,
		&i.PaymentMethod,
		&i.Total,
		&i.CostTotal,
		&i.CreatedBy,
		&i.CreatedAt,
	)
	return i, err
}

const listOrdersByPeriod = `-- name: ListOrdersByPeriod :many
SELECT id, payment_method, total, cost_total, created_by, created_at
FROM orders
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at DESC, id DESC
LIMIT $3
`

type ListOrdersByPeriodParams struct {
	From  pgtype.Timestamptz `json:"from"`
	To    pgtype.Timestamptz `json:"to"`
	Limit int32              `json:"limit"`
}

func (q *Queries) ListOrdersByPeriod(ctx context.Context, db DBTX, arg ListOrdersByPeriodParams) ([]Orders, error) {
	rows, err := db.Query(ctx, listOrdersByPeriod, arg.From, arg.To, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Orders
	for rows.Next() {
		var i Orders
		if err := rows.Scan(
			&i.ID,
			&i.PaymentMethod,
			&i.Total,
			&i.CostTotal,
			&i.CreatedBy,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrderItemsByOrderIDs = `-- name: ListOrderItemsByOrderIDs :many
SELECT id, order_id, product_id, name, quantity, unit_price, unit_cost
FROM order_items
WHERE order_id = ANY($1::uuid[])
ORDER BY order_id, id
`

func (q *Queries) ListOrderItemsByOrderIDs(ctx context.Context, db DBTX, orderIDs []uuid.UUID) ([]OrderItems, error) {
	rows, err := db.Query(ctx, listOrderItemsByOrderIDs, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItems
	for rows.Next() {
		var i OrderItems
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.ProductID,
			&i.Name,
			&i.Quantity,
			&i.UnitPrice,
			&i.UnitCost,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
