package pipeline

import (
	"context"
	"errors"
)

// errSuperseded is the outcome of a task cancelled by a newer mutation.
// It never leaves the package.
var errSuperseded = errors.New("coordination task superseded")

// task is the single in-flight debounce/flush unit of work.
type task struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	err    error

	// committed is set once the task has taken its quantity for the network;
	// from then on cancelling it has no effect. Guarded by Pipeline.mu.
	committed bool
}

func newTask() *task {
	ctx, cancel := context.WithCancel(context.Background())
	return &task{ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

func (t *task) cancelled() bool { return t.ctx.Err() != nil }

func (t *task) finish(err error) {
	t.err = err
	t.cancel()
	close(t.done)
}

// wait blocks until the task completes or ctx is done.
// A superseded task resolves without error.
func (t *task) wait(ctx context.Context) error {
	select {
	case <-t.done:
		if errors.Is(t.err, errSuperseded) {
			return nil
		}
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
