package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens-ai/pydebug/domain"
)

// testTask is a configurable task for executor tests
type testTask struct {
	name    string
	enabled bool
	delay   time.Duration
	err     error
	runs    *atomic.Int32
}

func (t *testTask) Name() string    { return t.name }
func (t *testTask) IsEnabled() bool { return t.enabled }

func (t *testTask) Execute(ctx context.Context) (interface{}, error) {
	if t.runs != nil {
		t.runs.Add(1)
	}
	if t.delay > 0 {
		select {
		case <-time.After(t.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return t.name, t.err
}

func TestExecuteRunsAllTasks(t *testing.T) {
	executor := NewParallelExecutor()
	var runs atomic.Int32

	tasks := make([]domain.ExecutableTask, 0, 5)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		tasks = append(tasks, &testTask{name: name, enabled: true, runs: &runs})
	}

	err := executor.Execute(context.Background(), tasks)

	require.NoError(t, err)
	assert.Equal(t, int32(5), runs.Load())
}

func TestExecuteSkipsDisabledTasks(t *testing.T) {
	executor := NewParallelExecutor()
	var runs atomic.Int32

	tasks := []domain.ExecutableTask{
		&testTask{name: "on", enabled: true, runs: &runs},
		&testTask{name: "off", enabled: false, runs: &runs},
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))
	assert.Equal(t, int32(1), runs.Load())
}

func TestExecuteCollectsAllFailures(t *testing.T) {
	executor := NewParallelExecutor()
	var runs atomic.Int32

	boom := errors.New("boom")
	tasks := []domain.ExecutableTask{
		&testTask{name: "ok", enabled: true, runs: &runs},
		&testTask{name: "bad1", enabled: true, err: boom, runs: &runs},
		&testTask{name: "bad2", enabled: true, err: boom, runs: &runs},
	}

	err := executor.Execute(context.Background(), tasks)

	require.Error(t, err)
	// A failing task does not stop the others
	assert.Equal(t, int32(3), runs.Load())

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad1: boom")
	assert.Contains(t, err.Error(), "bad2: boom")
}

func TestExecuteEmptyTaskList(t *testing.T) {
	executor := NewParallelExecutor()
	require.NoError(t, executor.Execute(context.Background(), nil))
}

func TestExecuteHonorsTimeout(t *testing.T) {
	executor := NewParallelExecutor()
	executor.SetTimeout(20 * time.Millisecond)

	tasks := []domain.ExecutableTask{
		&testTask{name: "slow", enabled: true, delay: time.Second},
	}

	err := executor.Execute(context.Background(), tasks)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecuteWithConcurrencyLimit(t *testing.T) {
	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(1)
	var runs atomic.Int32

	tasks := make([]domain.ExecutableTask, 0, 3)
	for _, name := range []string{"a", "b", "c"} {
		tasks = append(tasks, &testTask{name: name, enabled: true, runs: &runs})
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))
	assert.Equal(t, int32(3), runs.Load())
}
