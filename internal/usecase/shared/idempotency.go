package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type IdempotencyState string

const (
	IdempotencyStateNew        IdempotencyState = "new"
	IdempotencyStateReplay     IdempotencyState = "replay"
	IdempotencyStateInProgress IdempotencyState = "in_progress"
	IdempotencyStateConflict   IdempotencyState = "conflict"
)

const (
	ResourceTypeOrder   = "order"
	ResourceTypeCashCut = "cash_cut"
)

type IdempotencyBeginResult struct {
	State      IdempotencyState
	ResourceID *uuid.UUID
	Response   []byte
}

// IdempotencyStore guards client-keyed writes. Begin claims the key; the
// caller must follow up with Complete on success or Release on failure.
type IdempotencyStore interface {
	Begin(ctx context.Context, resourceType, key, fingerprint string, ttl time.Duration) (IdempotencyBeginResult, error)
	Complete(ctx context.Context, resourceType, key string, resourceID uuid.UUID, response []byte, ttl time.Duration) error
	Release(ctx context.Context, resourceType, key string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
