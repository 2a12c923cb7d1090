package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ludo-technologies/ckscan/domain"
)

// DefaultExecutionTimeout bounds one Execute call. Metric engines are pure
// in-memory computations, so hitting this means something is badly wrong,
// not that the input is large.
const DefaultExecutionTimeout = 10 * time.Minute

// ParallelExecutorImpl fans tasks out to goroutines and waits for all of
// them. The CK service hands it one task per metric engine; Execute
// returning is the barrier between metric computation and threshold
// evaluation, so callers may read every result slot once it returns nil.
type ParallelExecutorImpl struct {
	maxConcurrency int // 0 means one goroutine per task
	timeout        time.Duration
}

// NewParallelExecutor creates an executor with unbounded concurrency and the
// default timeout
func NewParallelExecutor() domain.ParallelExecutor {
	return &ParallelExecutorImpl{timeout: DefaultExecutionTimeout}
}

// Execute runs every enabled task concurrently and waits for all of them.
// The first task failure is reported after the barrier; remaining tasks are
// not interrupted, so partial per-engine results stay usable by tests and
// callers that tolerate them.
func (pe *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	if len(tasks) == 0 {
		return nil
	}

	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	var slots chan struct{}
	if pe.maxConcurrency > 0 {
		slots = make(chan struct{}, pe.maxConcurrency)
	}

	var wg sync.WaitGroup
	failures := make(chan error, len(tasks))

	for _, task := range tasks {
		if !task.IsEnabled() {
			continue
		}

		wg.Add(1)
		go func(t domain.ExecutableTask) {
			defer wg.Done()

			if slots != nil {
				slots <- struct{}{}
				defer func() { <-slots }()
			}

			select {
			case <-ctx.Done():
				failures <- fmt.Errorf("task %s cancelled: %w", t.Name(), ctx.Err())
				return
			default:
			}

			if _, err := t.Execute(ctx); err != nil {
				failures <- fmt.Errorf("task %s failed: %w", t.Name(), err)
			}
		}(task)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("parallel execution timed out after %v", pe.timeout)
	}

	close(failures)
	failed := 0
	var first error
	for err := range failures {
		if first == nil {
			first = err
		}
		failed++
	}
	if first != nil {
		return fmt.Errorf("parallel execution failed with %d errors: %w", failed, first)
	}
	return nil
}

// SetMaxConcurrency limits how many tasks run at once; 0 removes the limit
func (pe *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	pe.maxConcurrency = max
}

// SetTimeout bounds one Execute call
func (pe *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	pe.timeout = timeout
}

// SimpleTask wraps a closure as an ExecutableTask. The CK service uses one
// per metric engine, named after the metric it computes.
type SimpleTask struct {
	name    string
	enabled bool
	execute func(context.Context) (interface{}, error)
}

// NewSimpleTask creates a named task around the given closure
func NewSimpleTask(name string, enabled bool, execute func(context.Context) (interface{}, error)) domain.ExecutableTask {
	return &SimpleTask{
		name:    name,
		enabled: enabled,
		execute: execute,
	}
}

// Name returns the task name
func (t *SimpleTask) Name() string {
	return t.name
}

// Execute runs the wrapped closure
func (t *SimpleTask) Execute(ctx context.Context) (interface{}, error) {
	if t.execute == nil {
		return nil, fmt.Errorf("task %s has no execute function", t.name)
	}
	return t.execute(ctx)
}

// IsEnabled reports whether Execute should run this task
func (t *SimpleTask) IsEnabled() bool {
	return t.enabled
}
