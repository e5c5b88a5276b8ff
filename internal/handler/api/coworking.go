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

type CoworkingHandler struct {
	cmds commands.CoworkingCommands
	q    queries.CoworkingQueries
}

func NewCoworkingHandler(cmds commands.CoworkingCommands, q queries.CoworkingQueries) *CoworkingHandler {
	return &CoworkingHandler{cmds: cmds, q: q}
}

// @Summary List coworking sessions
// @Tags coworking
// @Produce json
// @Security BearerAuth
// @Param status query string false "open or closed"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} resdto.CoworkingSessionResponse
// @Failure 400 {object} httperr.Response
// @Router /coworking-sessions [get]
func (h *CoworkingHandler) List(c *gin.Context) {
	var query reqdto.ListSessionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.q.List(c.Request.Context(), query.Status, query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	respond(c, http.StatusOK, views, resdto.FromCoworkingSessionViews)
}

// @Summary Start coworking session
// @Tags coworking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartSessionRequest true "Session"
// @Success 201 {object} resdto.CoworkingSessionResponse
// @Failure 400 {object} httperr.Response
// @Router /coworking-sessions [post]
func (h *CoworkingHandler) Start(c *gin.Context) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.Start(c.Request.Context(), req, operatorID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	respond(c, http.StatusCreated, view, resdto.FromCoworkingSessionView)
}

// @Summary Close coworking session
// @Description Bills started minutes at the hourly rate.
// @Tags coworking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.CloseSessionRequest true "Payment"
// @Success 200 {object} resdto.CoworkingSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /coworking-sessions/{id}/close [post]
func (h *CoworkingHandler) Close(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.Close(c.Request.Context(), id, req)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromCoworkingSessionView)
}
