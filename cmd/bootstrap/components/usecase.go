package components

import (
	"context"

	"coworking-pos/internal/infra/export"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/config"
	"coworking-pos/internal/pkg/dedup"
	"coworking-pos/internal/usecase"
	"coworking-pos/internal/usecase/commands"
	"coworking-pos/internal/usecase/queries"
	"coworking-pos/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewProductCommands,
		commands.NewCoworkingCommands,
		commands.NewExpenseCommands,
		NewOrderCommands,
		NewCashCutRegistry,
		NewCashCutCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewProductQueries,
		queries.NewOrderQueries,
		queries.NewCoworkingQueries,
		queries.NewExpenseQueries,
		fx.Annotate(
			NewCashCutRenderer,
			fx.As(new(queries.CashCutRenderer)),
		),
		NewCashCutQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewOrderCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	idempotency shared.IdempotencyStore,
	orderQueries queries.OrderQueries,
	clk clock.Clock,
) commands.OrderCommands {
	return commands.NewOrderCommands(uow, idempotency, orderQueries, cfg.Idempotency.TTL, clk)
}

// NewCashCutRegistry is process scoped; stopping the app drops its timers and entries.
func NewCashCutRegistry(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) *commands.CashCutRegistry {
	registry := commands.NewCashCutRegistry(dedup.Options{
		RecentTTL:     cfg.CashCut.RecentTTL,
		InflightGrace: cfg.CashCut.InflightGrace,
	}, clk)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			registry.Close()
			return nil
		},
	})

	return registry
}

func NewCashCutCommands(
	cfg config.Config,
	store shared.CashCutStore,
	ledger shared.LedgerReader,
	registry *commands.CashCutRegistry,
	clk clock.Clock,
) commands.CashCutCommands {
	return commands.NewCashCutCommands(store, ledger, registry, commands.CashCutOptions{
		KeyBucket:        cfg.CashCut.KeyBucket,
		WaitTimeout:      cfg.CashCut.WaitTimeout,
		OperationTimeout: cfg.CashCut.OperationTimeout,
		Location:         cfg.CashCut.Location(),
		TopProducts:      cfg.CashCut.TopProducts,
	}, clk)
}

func NewCashCutRenderer(cfg config.Config) *export.CashCutWorkbook {
	return export.NewCashCutWorkbook(cfg.CashCut.Location())
}

func NewCashCutQueries(store queries.CashCutReadStore, renderer queries.CashCutRenderer) queries.CashCutQueries {
	return queries.NewCashCutQueries(store, renderer, export.FileName)
}
