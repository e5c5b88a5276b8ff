package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/usecase/commands"
	"coworking-pos/internal/worker"
	commandsmock "coworking-pos/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCashCutScheduler(t *testing.T) {
	systemID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	t.Run("run once creates a scheduled cut as the system operator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockCashCutCommands(ctrl)
		cut := &cashcut.CashCut{ID: uuid.New(), Kind: cashcut.KindScheduled}

		cmds.EXPECT().Create(gomock.Any(), systemID, cashcut.KindScheduled, gomock.Any()).
			Return(&commands.CreateCashCutResult{CashCut: cut}, nil).Times(1)

		w := worker.NewCashCutScheduler(cmds, systemID, time.Hour)
		require.NoError(t, w.RunOnce(context.Background()))
	})

	t.Run("run once surfaces the command error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockCashCutCommands(ctrl)
		boom := errors.New("boom")

		cmds.EXPECT().Create(gomock.Any(), systemID, cashcut.KindScheduled, gomock.Any()).
			Return(nil, boom).Times(1)

		w := worker.NewCashCutScheduler(cmds, systemID, time.Hour)
		assert.ErrorIs(t, w.RunOnce(context.Background()), boom)
	})

	t.Run("start ticks until the context is cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockCashCutCommands(ctrl)
		ticked := make(chan struct{}, 8)

		cmds.EXPECT().Create(gomock.Any(), systemID, cashcut.KindScheduled, gomock.Any()).
			DoAndReturn(func(context.Context, uuid.UUID, cashcut.Kind, string) (*commands.CreateCashCutResult, error) {
				select {
				case ticked <- struct{}{}:
				default:
				}
				return nil, errors.New("ledger unavailable")
			}).MinTimes(1)

		w := worker.NewCashCutScheduler(cmds, systemID, 5*time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			w.Start(ctx)
			close(done)
		}()

		select {
		case <-ticked:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler never ticked")
		}
		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not stop")
		}
	})

	t.Run("zero interval is disabled", func(t *testing.T) {
		w := worker.NewCashCutScheduler(nil, systemID, 0)
		assert.False(t, w.Enabled())
	})
}
