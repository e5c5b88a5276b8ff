package cashcut_test

import (
	"testing"
	"time"

	"coworking-pos/internal/domain/cashcut"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPeriod(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	now := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC) // 14:00 local

	t.Run("first cut starts at local midnight", func(t *testing.T) {
		p := cashcut.NextPeriod(nil, now, loc)
		assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, loc), p.Start)
		assert.Equal(t, now, p.End)
	})

	t.Run("continues from the latest cut", func(t *testing.T) {
		last := now.Add(-2 * time.Hour)
		p := cashcut.NextPeriod(&last, now, loc)
		assert.Equal(t, last, p.Start)
		assert.True(t, p.Contains(now))
		assert.False(t, p.Contains(last))
	})

	t.Run("latest cut in the future collapses to now", func(t *testing.T) {
		future := now.Add(time.Minute)
		p := cashcut.NextPeriod(&future, now, loc)
		assert.Equal(t, now, p.Start)
	})
}

func TestNew(t *testing.T) {
	now := time.Now()
	period := cashcut.Period{Start: now.Add(-time.Hour), End: now}
	key := cashcut.DeriveKey(uuid.New(), cashcut.KindManual, now, time.Minute, "x")

	cut, err := cashcut.New(cashcut.KindManual, period, cashcut.Summary{}, key, "  closing  ", uuid.New(), now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, cut.ID)
	assert.Equal(t, "closing", cut.Notes)

	_, err = cashcut.New("weekly", period, cashcut.Summary{}, key, "", uuid.New(), now)
	assert.ErrorIs(t, err, cashcut.ErrInvalidKind)

	_, err = cashcut.New(cashcut.KindManual, period, cashcut.Summary{}, key, "", uuid.Nil, now)
	assert.ErrorIs(t, err, cashcut.ErrMissingOperator)

	_, err = cashcut.New(cashcut.KindManual, cashcut.Period{Start: now, End: now.Add(-time.Second)}, cashcut.Summary{}, key, "", uuid.New(), now)
	assert.ErrorIs(t, err, cashcut.ErrInvalidPeriod)
}
