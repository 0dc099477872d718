package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTaskRejectsDuplicateID(t *testing.T) {
	ts := NewTaskScheduler(logging.NewLogger())
	defer ts.Stop()

	noop := func(context.Context) error { return nil }
	_, err := ts.AddTask("outbox", "outbox dispatch", noop, time.Second)
	require.NoError(t, err)
	_, err = ts.AddTask("outbox", "outbox dispatch", noop, time.Second)
	assert.Error(t, err)
}

func TestScheduleTaskRecurs(t *testing.T) {
	ts := NewTaskScheduler(logging.NewLogger())

	var calls int32
	task, err := ts.AddTask("tick", "tick", func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}, 5*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, ts.ScheduleTask("tick", 0))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, time.Second, time.Millisecond)
	ts.Stop()

	after := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&calls))

	_, runs, lastErr := task.LastRun()
	assert.GreaterOrEqual(t, runs, 3)
	assert.NoError(t, lastErr)
}

func TestRunTaskRecordsError(t *testing.T) {
	ts := NewTaskScheduler(logging.NewLogger())
	boom := errors.New("boom")

	task, err := ts.AddTask("once", "once", func(context.Context) error { return boom }, 0)
	require.NoError(t, err)
	assert.False(t, task.IsRecurring)

	require.NoError(t, ts.RunTask("once"))
	ts.Stop()

	_, runs, lastErr := task.LastRun()
	assert.Equal(t, 1, runs)
	assert.ErrorIs(t, lastErr, boom)
}

func TestUnknownTask(t *testing.T) {
	ts := NewTaskScheduler(logging.NewLogger())
	defer ts.Stop()

	assert.Error(t, ts.RunTask("missing"))
	assert.Error(t, ts.ScheduleTask("missing", 0))
	assert.Error(t, ts.RemoveTask("missing"))
	_, err := ts.GetTask("missing")
	assert.Error(t, err)
}
