package api

import (
	"net/http"

	reqdto "coworking-pos/internal/handler/dto/request"
	resdto "coworking-pos/internal/handler/dto/response"
	"coworking-pos/internal/handler/httperr"
	"coworking-pos/internal/handler/middleware"
	"coworking-pos/internal/usecase/commands"
	"coworking-pos/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const headerIdempotencyKey = "Idempotency-Key"

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Create order
// @Description Sell products. With an Idempotency-Key, retries of the same body return the first order.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Client key for safe retries"
// @Param request body reqdto.CreateOrderRequest true "Order"
// @Success 200 {object} resdto.OrderResponse "Replayed"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req, operatorID, c.GetHeader(headerIdempotencyKey))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	respond(c, replayStatus(c, result.IsReplayed), result.Order, resdto.FromOrderView)
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromOrderView)
}

// @Summary List orders in a period
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param from query string true "RFC 3339 start"
// @Param to query string true "RFC 3339 end"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var query reqdto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.q.ListByPeriod(c.Request.Context(), query.ToPeriod(), query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	respond(c, http.StatusOK, views, resdto.FromOrderViews)
}

// replayStatus sets the replay header and picks 200 for a replay, 201 otherwise.
func replayStatus(c *gin.Context, replayed bool) int {
	if replayed {
		c.Header(middleware.HeaderIdempotentReplayed, "true")
		return http.StatusOK
	}
	return http.StatusCreated
}
