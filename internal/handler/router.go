package handler

import (
	"net/http"

	"coworking-pos/internal/domain/operator"
	"coworking-pos/internal/handler/api"
	"coworking-pos/internal/handler/middleware"
	"coworking-pos/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups every API handler the router mounts.
type Handlers struct {
	Auth      *api.AuthHandler
	Product   *api.ProductHandler
	Order     *api.OrderHandler
	Expense   *api.ExpenseHandler
	Coworking *api.CoworkingHandler
	CashCut   *api.CashCutHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.Middleware())
	engine.Use(middleware.ETag())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := authMiddleware.RequireRoleAtLeast(operator.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		protected := apiGroup.Group("")
		protected.Use(authMiddleware.RequireAuth())

		addRoutes(protected.Group("/products"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Product.List},
			{Method: http.MethodPost, Path: "", Handler: h.Product.Create, Mw: []gin.HandlerFunc{adminOnly}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Product.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Product.Update, Mw: []gin.HandlerFunc{adminOnly}},
		})

		addRoutes(protected.Group("/orders"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Order.List},
			{Method: http.MethodPost, Path: "", Handler: h.Order.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
		})

		addRoutes(protected.Group("/expenses"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Expense.List},
			{Method: http.MethodPost, Path: "", Handler: h.Expense.Create},
		})

		addRoutes(protected.Group("/coworking-sessions"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Coworking.List},
			{Method: http.MethodPost, Path: "", Handler: h.Coworking.Start},
			{Method: http.MethodPost, Path: "/:id/close", Handler: h.Coworking.Close},
		})

		addRoutes(protected.Group("/cash-cuts"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.CashCut.List},
			{Method: http.MethodPost, Path: "", Handler: h.CashCut.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.CashCut.Get},
			{Method: http.MethodGet, Path: "/:id/export", Handler: h.CashCut.Export},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
