package converter

import (
	"coworking-pos/internal/domain/product"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
)

func ProductToCreateParams(p *product.Product) sqlc.CreateProductParams {
	return sqlc.CreateProductParams{
		ID:        p.ID(),
		Name:      p.Name(),
		Category:  p.Category(),
		Price:     pgconv.DecimalToNumeric(p.Price()),
		Cost:      pgconv.DecimalToNumeric(p.Cost()),
		Stock:     int32(p.Stock()), // #nosec G115 -- stock is validated non-negative and small
		Active:    p.Active(),
		CreatedAt: pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func ProductToUpdateParams(p *product.Product) sqlc.UpdateProductParams {
	return sqlc.UpdateProductParams{
		ID:        p.ID(),
		Name:      p.Name(),
		Category:  p.Category(),
		Price:     pgconv.DecimalToNumeric(p.Price()),
		Cost:      pgconv.DecimalToNumeric(p.Cost()),
		Stock:     int32(p.Stock()), // #nosec G115
		Active:    p.Active(),
		UpdatedAt: pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func ProductFromRow(row sqlc.Products) (*product.Product, error) {
	price, err := pgconv.DecimalFromNumeric(row.Price)
	if err != nil {
		return nil, err
	}
	cost, err := pgconv.DecimalFromNumeric(row.Cost)
	if err != nil {
		return nil, err
	}
	return product.ReconstructProduct(
		row.ID,
		row.Name,
		row.Category,
		price,
		cost,
		int(row.Stock),
		row.Active,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
