package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dev-mohitbeniwal/ems/api/model"
	mock_service "github.com/dev-mohitbeniwal/ems/api/test/service_mock"
)

func TestRunReminderLoop_SweepOutlivesShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	reminders := mock_service.NewMockIReminderService(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminders.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(runCtx context.Context, _ time.Time) (*model.ReminderRunResult, error) {
			cancel()
			assert.NoError(t, runCtx.Err())
			return &model.ReminderRunResult{Sent: 1}, nil
		}).MinTimes(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runReminderLoop(ctx, reminders, 5*time.Millisecond)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reminder loop did not stop after cancellation")
	}
}

func TestDrain(t *testing.T) {
	t.Run("waits for every step", func(t *testing.T) {
		var order []string
		ok := drain(context.Background(),
			func() { order = append(order, "reminders") },
			func() { order = append(order, "events") })
		assert.True(t, ok)
		assert.Equal(t, []string{"reminders", "events"}, order)
	})

	t.Run("gives up at the deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		block := make(chan struct{})
		defer close(block)

		assert.False(t, drain(ctx, func() { <-block }))
	})
}
