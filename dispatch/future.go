package dispatch

import "context"

// Future represents the outcome of an asynchronous dispatch.
// It completes exactly once with the same outcome the synchronous path would
// have produced. Waiting can be abandoned through context cancellation, but
// the in-flight handler invocation itself is not stopped by that.
type Future[T any] struct {
	done   chan struct{}
	result T
	err    error
}

// Wait blocks until the future completes or the context is done.
// On context cancellation it returns the context error; the dispatch keeps
// running and its outcome remains available through a later Wait or Done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// RunFuture executes fn on a worker goroutine and returns a future for its outcome.
func RunFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		f.result, f.err = fn()
		close(f.done)
	}()

	return f
}
