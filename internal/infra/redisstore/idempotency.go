package redisstore

import (
	"context"
	"fmt"
	"time"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var beginScript = redis.NewScript(`
local key = KEYS[1]
local fingerprint = ARGV[1]
local ttl_ms = ARGV[2]

if redis.call("EXISTS", key) == 0 then
  redis.call("HSET", key, "fingerprint", fingerprint, "status", "processing")
  redis.call("PEXPIRE", key, ttl_ms)
  return {"new"}
end

if redis.call("HGET", key, "fingerprint") ~= fingerprint then
  return {"conflict"}
end

if redis.call("HGET", key, "status") == "completed" then
  return {"replay", redis.call("HGET", key, "resource_id") or "", redis.call("HGET", key, "response") or ""}
end

return {"in_progress"}
`)

var completeScript = redis.NewScript(`
local key = KEYS[1]
local ttl_ms = ARGV[1]

if redis.call("HGET", key, "status") ~= "processing" then
  return 0
end

redis.call("HSET", key, "status", "completed", "resource_id", ARGV[2], "response", ARGV[3])
redis.call("PEXPIRE", key, ttl_ms)
return 1
`)

var releaseScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "status") == "processing" then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore keeps idempotency keys as redis hashes. Expiry is left to
// redis TTLs.
type IdempotencyStore struct {
	client redis.UniversalClient
	prefix string
}

func NewIdempotencyStore(client redis.UniversalClient, prefix string) *IdempotencyStore {
	if prefix == "" {
		prefix = "pos"
	}
	return &IdempotencyStore{client: client, prefix: prefix}
}

func (s *IdempotencyStore) redisKey(resourceType, key string) string {
	return fmt.Sprintf("%s:idem:%s:%s", s.prefix, resourceType, key)
}

func (s *IdempotencyStore) Begin(ctx context.Context, resourceType, key, fingerprint string, ttl time.Duration) (shared.IdempotencyBeginResult, error) {
	raw, err := beginScript.Run(ctx, s.client,
		[]string{s.redisKey(resourceType, key)},
		fingerprint,
		ttl.Milliseconds(),
	).Result()
	if err != nil {
		return shared.IdempotencyBeginResult{}, infra.WrapRepoErr("failed to begin idempotency key", err, infra.KindDBFailure)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) == 0 {
		return shared.IdempotencyBeginResult{}, infra.WrapRepoErr("unexpected redis begin result", nil, infra.KindDBFailure)
	}

	switch state := shared.IdempotencyState(asString(values[0])); state {
	case shared.IdempotencyStateNew, shared.IdempotencyStateConflict, shared.IdempotencyStateInProgress:
		return shared.IdempotencyBeginResult{State: state}, nil
	case shared.IdempotencyStateReplay:
		if len(values) < 3 {
			return shared.IdempotencyBeginResult{}, infra.WrapRepoErr("unexpected redis replay payload", nil, infra.KindDBFailure)
		}
		result := shared.IdempotencyBeginResult{State: state}
		if id := asString(values[1]); id != "" {
			parsed, err := uuid.Parse(id)
			if err != nil {
				return shared.IdempotencyBeginResult{}, infra.WrapRepoErr("invalid stored resource id", err, infra.KindDBFailure)
			}
			result.ResourceID = &parsed
		}
		if body := asString(values[2]); body != "" {
			result.Response = []byte(body)
		}
		return result, nil
	default:
		return shared.IdempotencyBeginResult{}, infra.WrapRepoErr(
			"unknown idempotency state",
			errs.Newf("state %q", state),
			infra.KindDBFailure,
		)
	}
}

func (s *IdempotencyStore) Complete(ctx context.Context, resourceType, key string, resourceID uuid.UUID, response []byte, ttl time.Duration) error {
	n, err := completeScript.Run(ctx, s.client,
		[]string{s.redisKey(resourceType, key)},
		ttl.Milliseconds(),
		resourceID.String(),
		string(response),
	).Int()
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err, infra.KindDBFailure)
	}
	if n == 0 {
		return infra.WrapRepoErr("idempotency key not in processing state", nil, infra.KindNotFound)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, resourceType, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.redisKey(resourceType, key)}).Err(); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err, infra.KindDBFailure)
	}
	return nil
}

// DeleteExpired is a no-op: redis evicts keys on their own TTL.
func (s *IdempotencyStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func asString(v interface{}) string {
	switch typed := v.(type) {
	case string:
		return typed
	case []byte:
		return string(typed)
	default:
		return fmt.Sprint(v)
	}
}
