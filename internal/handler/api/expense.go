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

type ExpenseHandler struct {
	cmds commands.ExpenseCommands
	q    queries.ExpenseQueries
}

func NewExpenseHandler(cmds commands.ExpenseCommands, q queries.ExpenseQueries) *ExpenseHandler {
	return &ExpenseHandler{cmds: cmds, q: q}
}

// @Summary Record expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateExpenseRequest true "Expense"
// @Success 201 {object} resdto.ExpenseResponse
// @Failure 400 {object} httperr.Response
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), req, operatorID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	respond(c, http.StatusCreated, view, resdto.FromExpenseView)
}

// @Summary List expenses in a period
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param from query string true "RFC 3339 start"
// @Param to query string true "RFC 3339 end"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} resdto.ExpenseResponse
// @Failure 400 {object} httperr.Response
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
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
	respond(c, http.StatusOK, views, resdto.FromExpenseViews)
}
