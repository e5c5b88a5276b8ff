package errs

import "errors"

// Sentinels shared by the handler layer and the use cases.
var (
	// Catalog / sales errors
	ErrProductNotFound          = errors.New("product not found")
	ErrOrderNotFound            = errors.New("order not found")
	ErrCoworkingSessionNotFound = errors.New("coworking session not found")
	ErrCashCutNotFound          = errors.New("cash cut not found")

	// Idempotency errors
	ErrIdempotencyKeyInvalid  = errors.New("idempotency key invalid")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyMismatch    = errors.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
