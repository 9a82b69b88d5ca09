package domain

import "context"

// ProgressManager creates progress trackers for long-running work
type ProgressManager interface {
	// StartTask creates a new progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress is rendered to a terminal
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks the progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Complete marks the task as finished
	Complete()
}

// ParallelExecutor runs independent tasks concurrently
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}

// ExecutableTask is a unit of work run by the parallel executor
type ExecutableTask interface {
	// Name identifies the task in error messages
	Name() string

	// IsEnabled reports whether the task should run
	IsEnabled() bool

	// Execute runs the task
	Execute(ctx context.Context) (interface{}, error)
}
