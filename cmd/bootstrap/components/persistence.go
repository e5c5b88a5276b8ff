package components

import (
	"context"
	"fmt"
	"time"

	"coworking-pos/internal/infra/filestore"
	"coworking-pos/internal/infra/readstore"
	"coworking-pos/internal/infra/redisstore"
	"coworking-pos/internal/infra/repository"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/infra/uow"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/config"
	"coworking-pos/internal/usecase/queries"
	"coworking-pos/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// User
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.UserReadQueries)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Product
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ProductReadQueries)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductReadStore)),
		),
		// Order
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.OrderReadQueries)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		// Coworking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.CoworkingReadQueries)),
		),
		fx.Annotate(
			readstore.NewCoworkingReadStore,
			fx.As(new(queries.CoworkingReadStore)),
		),
		// Expense
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ExpenseReadQueries)),
		),
		fx.Annotate(
			readstore.NewExpenseReadStore,
			fx.As(new(queries.ExpenseReadStore)),
		),
		// Ledger
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.LedgerQueries)),
		),
		fx.Annotate(
			readstore.NewLedgerReader,
			fx.As(new(shared.LedgerReader)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Cash cuts
		NewCashCutStore,
		func(store shared.CashCutStore) queries.CashCutReadStore {
			return store
		},
		// Idempotency
		NewIdempotencyStore,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

// NewCashCutStore picks the durable store for cash cuts. Only the postgres
// store also records a completed idempotency key next to the cut.
func NewCashCutStore(cfg config.Config, pool *pgxpool.Pool, q *sqlc.Queries) (shared.CashCutStore, error) {
	switch cfg.CashCut.Store {
	case "file":
		store, err := filestore.NewCashCutFileStore(cfg.CashCut.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cash cut file store: %w", err)
		}
		return store, nil
	default:
		return repository.NewCashCutStore(q, pool, cfg.Idempotency.TTL), nil
	}
}

func NewIdempotencyStore(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, q *sqlc.Queries, clk clock.Clock) (shared.IdempotencyStore, error) {
	if cfg.Idempotency.Backend != "redis" {
		return repository.NewIdempotencyRepository(q, pool, clk), nil
	}
	client, err := NewRedisClient(lc, cfg.Redis)
	if err != nil {
		return nil, err
	}
	return redisstore.NewIdempotencyStore(client, cfg.Redis.Prefix), nil
}

// NewRedisClient is only called when the redis backend is selected.
func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
