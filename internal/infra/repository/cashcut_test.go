package repository

import (
	"context"
	"testing"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/converter"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCashCutQueries struct {
	mock.Mock
}

func (m *MockCashCutQueries) InsertCashCut(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertCashCutParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCashCutQueries) LockCashCutPeriods(ctx context.Context, db sqlc.DBTX) error {
	args := m.Called(ctx, db)
	return args.Error(0)
}

func (m *MockCashCutQueries) FindCashCutByKey(ctx context.Context, db sqlc.DBTX, idempotencyKey string) (sqlc.CashCuts, error) {
	args := m.Called(ctx, db, idempotencyKey)
	return args.Get(0).(sqlc.CashCuts), args.Error(1)
}

func (m *MockCashCutQueries) FindCashCutByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.CashCuts, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.CashCuts), args.Error(1)
}

func (m *MockCashCutQueries) FindLatestCashCutPeriodEnd(ctx context.Context, db sqlc.DBTX) (pgtype.Timestamptz, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(pgtype.Timestamptz), args.Error(1)
}

func (m *MockCashCutQueries) ListCashCuts(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.CashCuts, error) {
	args := m.Called(ctx, db, limit)
	rows, _ := args.Get(0).([]sqlc.CashCuts)
	return rows, args.Error(1)
}

func (m *MockCashCutQueries) InsertCompletedIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertCompletedIdempotencyKeyParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func sampleCut(t *testing.T, key string) *cashcut.CashCut {
	t.Helper()
	end := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	cut, err := cashcut.New(
		cashcut.KindManual,
		cashcut.Period{Start: end.Add(-8 * time.Hour), End: end},
		cashcut.Summary{
			TotalIncome: decimal.NewFromInt(100),
			TotalCost:   decimal.NewFromInt(40),
			TotalProfit: decimal.NewFromInt(60),
			NetProfit:   decimal.NewFromInt(60),
		},
		key, "evening", uuid.New(), end,
	)
	require.NoError(t, err)
	return cut
}

// expectPeriodOpen lets the insert through the period guard: no cut stored yet.
func expectPeriodOpen(q *MockCashCutQueries, tx *fakeTx) {
	q.On("LockCashCutPeriods", mock.Anything, tx).Return(nil)
	q.On("FindLatestCashCutPeriodEnd", mock.Anything, tx).Return(pgtype.Timestamptz{}, pgx.ErrNoRows)
}

func TestCashCutStore_Insert(t *testing.T) {
	t.Run("writes cut and idempotency row in one transaction", func(t *testing.T) {
		cut := sampleCut(t, "cc_abc")
		q := new(MockCashCutQueries)
		db := new(mockDB)
		tx := &fakeTx{}

		db.On("Begin", mock.Anything).Return(tx, nil)
		expectPeriodOpen(q, tx)
		q.On("InsertCashCut", mock.Anything, tx, mock.AnythingOfType("sqlc.InsertCashCutParams")).Return(cut.ID, nil)
		q.On("InsertCompletedIdempotencyKey", mock.Anything, tx, mock.MatchedBy(func(arg sqlc.InsertCompletedIdempotencyKeyParams) bool {
			return arg.Key == "cash_cut:cc_abc" &&
				arg.ResourceType == shared.ResourceTypeCashCut &&
				arg.ResourceID == pgconv.UUIDToPgtype(cut.ID) &&
				arg.ExpiresAt.Time.Equal(cut.CreatedAt.Add(24*time.Hour)) &&
				len(arg.Response) > 0
		})).Return(nil)

		store := NewCashCutStore(q, db, 24*time.Hour)
		got, inserted, err := store.Insert(context.Background(), cut)

		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Same(t, cut, got)
		assert.True(t, tx.committed)
		q.AssertExpectations(t)
	})

	t.Run("lost race returns the stored cut", func(t *testing.T) {
		cut := sampleCut(t, "cc_race")
		existing := sampleCut(t, "cc_race")
		row, err := converter.CashCutToInsertParams(existing)
		require.NoError(t, err)

		q := new(MockCashCutQueries)
		db := new(mockDB)
		tx := &fakeTx{}

		db.On("Begin", mock.Anything).Return(tx, nil)
		expectPeriodOpen(q, tx)
		q.On("InsertCashCut", mock.Anything, tx, mock.Anything).Return(uuid.Nil, pgx.ErrNoRows)
		q.On("FindCashCutByKey", mock.Anything, db, "cc_race").Return(sqlc.CashCuts(row), nil)

		store := NewCashCutStore(q, db, 24*time.Hour)
		got, inserted, err := store.Insert(context.Background(), cut)

		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, existing.ID, got.ID)
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
		q.AssertNotCalled(t, "InsertCompletedIdempotencyKey", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("period closed by another writer is a conflict", func(t *testing.T) {
		cut := sampleCut(t, "cc_stale")
		q := new(MockCashCutQueries)
		db := new(mockDB)
		tx := &fakeTx{}

		db.On("Begin", mock.Anything).Return(tx, nil)
		q.On("LockCashCutPeriods", mock.Anything, tx).Return(nil)
		q.On("FindLatestCashCutPeriodEnd", mock.Anything, tx).
			Return(pgconv.TimeToPgtype(cut.PeriodStart.Add(time.Minute)), nil)
		q.On("FindCashCutByKey", mock.Anything, db, "cc_stale").Return(sqlc.CashCuts{}, pgx.ErrNoRows)

		_, _, err := NewCashCutStore(q, db, time.Hour).Insert(context.Background(), cut)

		assert.True(t, infra.IsKind(err, infra.KindConflict))
		assert.ErrorIs(t, err, ErrCashCutPeriodStale)
		assert.True(t, tx.rolledBack)
		q.AssertNotCalled(t, "InsertCashCut", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("period closed under the same key returns the stored cut", func(t *testing.T) {
		cut := sampleCut(t, "cc_done")
		existing := sampleCut(t, "cc_done")
		row, err := converter.CashCutToInsertParams(existing)
		require.NoError(t, err)

		q := new(MockCashCutQueries)
		db := new(mockDB)
		tx := &fakeTx{}

		db.On("Begin", mock.Anything).Return(tx, nil)
		q.On("LockCashCutPeriods", mock.Anything, tx).Return(nil)
		q.On("FindLatestCashCutPeriodEnd", mock.Anything, tx).Return(pgconv.TimeToPgtype(existing.PeriodEnd), nil)
		q.On("FindCashCutByKey", mock.Anything, db, "cc_done").Return(sqlc.CashCuts(row), nil)

		got, inserted, err := NewCashCutStore(q, db, time.Hour).Insert(context.Background(), cut)

		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, existing.ID, got.ID)
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		cut := sampleCut(t, "cc_fail")
		q := new(MockCashCutQueries)
		db := new(mockDB)
		tx := &fakeTx{}

		db.On("Begin", mock.Anything).Return(tx, nil)
		expectPeriodOpen(q, tx)
		q.On("InsertCashCut", mock.Anything, tx, mock.Anything).Return(uuid.Nil, assert.AnError)

		_, _, err := NewCashCutStore(q, db, time.Hour).Insert(context.Background(), cut)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.True(t, tx.rolledBack)
	})
}

func TestCashCutStore_LatestPeriodEnd(t *testing.T) {
	end := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

	t.Run("no cuts yet", func(t *testing.T) {
		q := new(MockCashCutQueries)
		db := new(mockDB)
		q.On("FindLatestCashCutPeriodEnd", mock.Anything, db).Return(pgtype.Timestamptz{}, pgx.ErrNoRows)

		got, err := NewCashCutStore(q, db, time.Hour).LatestPeriodEnd(context.Background())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("latest end", func(t *testing.T) {
		q := new(MockCashCutQueries)
		db := new(mockDB)
		q.On("FindLatestCashCutPeriodEnd", mock.Anything, db).Return(pgconv.TimeToPgtype(end), nil)

		got, err := NewCashCutStore(q, db, time.Hour).LatestPeriodEnd(context.Background())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Equal(end))
	})
}

func TestCashCutStore_FindByID_NotFound(t *testing.T) {
	q := new(MockCashCutQueries)
	db := new(mockDB)
	id := uuid.New()
	q.On("FindCashCutByID", mock.Anything, db, id).Return(sqlc.CashCuts{}, pgx.ErrNoRows)

	_, err := NewCashCutStore(q, db, time.Hour).FindByID(context.Background(), id)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
