package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/usecase/shared"
	"coworking-pos/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIdempotencyStore struct {
	mock.Mock
}

func (m *mockIdempotencyStore) Begin(ctx context.Context, resourceType, key, fingerprint string, ttl time.Duration) (shared.IdempotencyBeginResult, error) {
	args := m.Called(ctx, resourceType, key, fingerprint, ttl)
	return args.Get(0).(shared.IdempotencyBeginResult), args.Error(1)
}

func (m *mockIdempotencyStore) Complete(ctx context.Context, resourceType, key string, resourceID uuid.UUID, response []byte, ttl time.Duration) error {
	return m.Called(ctx, resourceType, key, resourceID, response, ttl).Error(0)
}

func (m *mockIdempotencyStore) Release(ctx context.Context, resourceType, key string) error {
	return m.Called(ctx, resourceType, key).Error(0)
}

func (m *mockIdempotencyStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func TestIdempotencySweeper(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("deletes keys expired at the clock's now", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		store.On("DeleteExpired", mock.Anything, now).Return(int64(3), nil).Once()

		w := worker.NewIdempotencySweeper(store, clock.NewMockClock(now), time.Hour)
		deleted, err := w.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
		store.AssertExpectations(t)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		store.On("DeleteExpired", mock.Anything, now).Return(int64(0), errors.New("db down")).Once()

		w := worker.NewIdempotencySweeper(store, clock.NewMockClock(now), time.Hour)
		_, err := w.RunOnce(context.Background())

		assert.Error(t, err)
		store.AssertExpectations(t)
	})

	t.Run("start sweeps on every tick", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		swept := make(chan struct{}, 8)
		store.On("DeleteExpired", mock.Anything, now).Return(int64(0), nil).Run(func(mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		})

		w := worker.NewIdempotencySweeper(store, clock.NewMockClock(now), 5*time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Start(ctx)

		for i := 0; i < 2; i++ {
			select {
			case <-swept:
			case <-time.After(2 * time.Second):
				t.Fatal("sweeper never ran")
			}
		}
	})
}
