package timer

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Task is a handle to a periodic function started with Every.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every runs fn on every tick of interval until ctx is done or the task is stopped.
// Owners still guard fn against a tick that raced with Stop.
func Every(ctx context.Context, clock clockwork.Clock, interval time.Duration, fn func(ctx context.Context)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	ticker := clock.NewTicker(interval)
	go func() {
		defer close(t.done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				if ctx.Err() != nil {
					return
				}
				fn(ctx)
			}
		}
	}()

	return t
}

// Stop cancels the task without waiting for it. It is safe to call from inside the
// task's own function, more than once, and on a nil task.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
}

// Wait blocks until the task goroutine has exited. Must not be called from inside
// the task's own function.
func (t *Task) Wait() {
	if t == nil {
		return
	}
	<-t.done
}

// Done is closed when the task goroutine has exited. A nil task is always done.
func (t *Task) Done() <-chan struct{} {
	if t == nil {
		return closedChan
	}
	return t.done
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Close stops the task and waits for it to exit.
func (t *Task) Close() {
	t.Stop()
	t.Wait()
}
