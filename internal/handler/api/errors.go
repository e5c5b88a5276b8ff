package api

import (
	"errors"
	"net/http"
	"time"

	"coworking-pos/internal/handler/httperr"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/usecase/commands"
	"coworking-pos/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// retryAfter is advertised on 409 answers for work that is still running.
const retryAfter = 2 * time.Second

var errUnauthenticated = errors.New("no authenticated operator")

// abortWithUseCaseError maps use-case sentinels onto HTTP statuses.
func abortWithUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errors.Is(err, errs.ErrOrderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
	case errors.Is(err, errs.ErrCoworkingSessionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coworking session not found", nil)
	case errors.Is(err, errs.ErrCashCutNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Cash cut not found", nil)
	case errors.Is(err, queries.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)

	case errors.Is(err, commands.ErrCashCutInProgress):
		httperr.AbortWithRetryAfter(c, http.StatusConflict, err, "Cash cut is still being processed", retryAfter)
	case errors.Is(err, errs.ErrIdempotencyInProgress):
		httperr.AbortWithRetryAfter(c, http.StatusConflict, err, "Request is currently being processed", retryAfter)
	case errors.Is(err, errs.ErrIdempotencyMismatch):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Idempotency key reused with a different request", nil)
	case errors.Is(err, errs.ErrIdempotencyKeyInvalid):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)

	case errors.Is(err, commands.ErrInsufficientStock):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", nil)
	case errors.Is(err, commands.ErrProductInactive):
		httperr.AbortWithError(c, http.StatusConflict, err, "Product is inactive", nil)
	case errors.Is(err, commands.ErrSessionAlreadyClosed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coworking session already closed", nil)

	case errors.Is(err, commands.ErrInvalidOperator):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid operator", nil)
	case errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", err.Error())

	case errors.Is(err, commands.ErrInvalidCredentials), errors.Is(err, commands.ErrAuthenticationFailed):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
	case errors.Is(err, queries.ErrUserInactive):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
