package repository

import (
	"context"
	"testing"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/sqlc"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProductWriteQueries struct {
	mock.Mock
}

func (m *MockProductWriteQueries) CreateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateProductParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockProductWriteQueries) UpdateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateProductParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductWriteQueries) FindProductByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Products, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Products), args.Error(1)
}

func (m *MockProductWriteQueries) DecrementProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementProductStockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestProductRepository_DecrementStock(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name     string
		rows     int64
		dbErr    error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "stock decremented", rows: 1},
		{name: "insufficient stock", rows: 0, wantKind: infra.KindConflict},
		{name: "check constraint", dbErr: &pgconn.PgError{Code: "23514"}, wantKind: infra.KindConflict},
		{name: "database error", dbErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockProductWriteQueries)
			q.On("DecrementProductStock", mock.Anything, mock.Anything, sqlc.DecrementProductStockParams{
				ID:       productID,
				Quantity: 3,
			}).Return(tt.rows, tt.dbErr)

			err := NewProductRepository(q, new(mockDB)).DecrementStock(context.Background(), productID, 3)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			q.AssertExpectations(t)
		})
	}
}

func TestProductRepository_FindForUpdate_NotFound(t *testing.T) {
	q := new(MockProductWriteQueries)
	id := uuid.New()
	q.On("FindProductByIDForUpdate", mock.Anything, mock.Anything, id).Return(sqlc.Products{}, pgx.ErrNoRows)

	_, err := NewProductRepository(q, new(mockDB)).FindForUpdate(context.Background(), id)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
