package components

import (
	"coworking-pos/internal/handler"
	"coworking-pos/internal/handler/api"
	"coworking-pos/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewProductHandler,
		api.NewOrderHandler,
		api.NewExpenseHandler,
		api.NewCoworkingHandler,
		api.NewCashCutHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Auth      *api.AuthHandler
	Product   *api.ProductHandler
	Order     *api.OrderHandler
	Expense   *api.ExpenseHandler
	Coworking *api.CoworkingHandler
	CashCut   *api.CashCutHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:      p.Auth,
		Product:   p.Product,
		Order:     p.Order,
		Expense:   p.Expense,
		Coworking: p.Coworking,
		CashCut:   p.CashCut,
	}
}
