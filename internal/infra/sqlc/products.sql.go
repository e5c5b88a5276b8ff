package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, name, category, price, cost, stock, active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Products, error) {
	var i Products
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Category,
		&i.Price,
		&i.Cost,
		&i.Stock,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createProduct = `-- name: CreateProduct :exec
INSERT INTO products (id, name, category, price, cost, stock, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type CreateProductParams struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Category  string             `json:"category"`
	Price     pgtype.Numeric     `json:"price"`
	Cost      pgtype.Numeric     `json:"cost"`
	Stock     int32              `json:"stock"`
	Active    bool               `json:"active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateProduct(ctx context.Context, db DBTX, arg CreateProductParams) error {
	_, err := db.Exec(ctx, createProduct,
		arg.ID,
		arg.Name,
		arg.Category,
		arg.Price,
		arg.Cost,
		arg.Stock,
		arg.Active,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateProduct = `-- name: UpdateProduct :execrows
UPDATE products
SET name = $2, category = $3, price = $4, cost = $5, stock = $6, active = $7, updated_at = $8
WHERE id = $1
`

type UpdateProductParams struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Category  string             `json:"category"`
	Price     pgtype.Numeric     `json:"price"`
	Cost      pgtype.Numeric     `json:"cost"`
	Stock     int32              `json:"stock"`
	Active    bool               `json:"active"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateProduct(ctx context.Context, db DBTX, arg UpdateProductParams) (int64, error) {
	result, err := db.Exec(ctx, updateProduct,
		arg.ID,
		arg.Name,
		arg.Category,
		arg.Price,
		arg.Cost,
		arg.Stock,
		arg.Active,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const findProductByID = `-- name: FindProductByID :one
SELECT ` + productColumns + ` FROM products WHERE id = $1
`

func (q *Queries) FindProductByID(ctx context.Context, db DBTX, id uuid.UUID) (Products, error) {
	return scanProduct(db.QueryRow(ctx, findProductByID, id))
}

const findProductByIDForUpdate = `-- name: FindProductByIDForUpdate :one
SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE
`

func (q *Queries) FindProductByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Products, error) {
	return scanProduct(db.QueryRow(ctx, findProductByIDForUpdate, id))
}

const listProducts = `-- name: ListProducts :many
SELECT ` + productColumns + ` FROM products
WHERE ($1::boolean = false OR active = true)
ORDER BY name ASC, id ASC
`

func (q *Queries) ListProducts(ctx context.Context, db DBTX, activeOnly bool) ([]Products, error) {
	rows, err := db.Query(ctx, listProducts, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Products
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const decrementProductStock = `-- name: DecrementProductStock :execrows
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND active = true AND stock >= $2
`

type DecrementProductStockParams struct {
	ID       uuid.UUID `json:"id"`
	Quantity int32     `json:"quantity"`
}

func (q *Queries) DecrementProductStock(ctx context.Context, db DBTX, arg DecrementProductStockParams) (int64, error) {
	result, err := db.Exec(ctx, decrementProductStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
