package api

import (
	"errors"
	"io"
	"net/http"

	"coworking-pos/internal/domain/cashcut"
	reqdto "coworking-pos/internal/handler/dto/request"
	resdto "coworking-pos/internal/handler/dto/response"
	"coworking-pos/internal/handler/httperr"
	"coworking-pos/internal/handler/middleware"
	"coworking-pos/internal/usecase/commands"
	"coworking-pos/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CashCutHandler struct {
	cmds commands.CashCutCommands
	q    queries.CashCutQueries
}

func NewCashCutHandler(cmds commands.CashCutCommands, q queries.CashCutQueries) *CashCutHandler {
	return &CashCutHandler{cmds: cmds, q: q}
}

// @Summary Trigger manual cash cut
// @Description Closes the period since the previous cut. Repeating the same notes within the key window
// @Description returns the stored cut with Idempotent-Replayed: true.
// @Tags cash-cuts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCashCutRequest false "Notes"
// @Success 200 {object} resdto.CashCutResponse "Replayed"
// @Success 201 {object} resdto.CashCutResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response "Still processing; see Retry-After"
// @Router /cash-cuts [post]
func (h *CashCutHandler) Create(c *gin.Context) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateCashCutRequest
	// an empty body means no notes
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), operatorID, cashcut.KindManual, req.Notes)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	respond(c, replayStatus(c, result.IsReplayed), result.CashCut, resdto.FromCashCut)
}

// @Summary List cash cuts
// @Description Newest first.
// @Tags cash-cuts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} resdto.CashCutResponse
// @Router /cash-cuts [get]
func (h *CashCutHandler) List(c *gin.Context) {
	var query reqdto.ListCashCutsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	cuts, err := h.q.List(c.Request.Context(), query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	respond(c, http.StatusOK, cuts, resdto.FromCashCuts)
}

// @Summary Get cash cut
// @Tags cash-cuts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cash cut ID"
// @Success 200 {object} resdto.CashCutResponse
// @Failure 404 {object} httperr.Response
// @Router /cash-cuts/{id} [get]
func (h *CashCutHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cut, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	respond(c, http.StatusOK, cut, resdto.FromCashCut)
}

// @Summary Export cash cut
// @Description Downloads the cut as an XLSX workbook.
// @Tags cash-cuts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Cash cut ID"
// @Success 200 {file} file
// @Failure 404 {object} httperr.Response
// @Router /cash-cuts/{id}/export [get]
func (h *CashCutHandler) Export(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	export, err := h.q.Export(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, export.Content)
}
