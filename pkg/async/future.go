package async

import (
	"context"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	val  U
	err  error
	done chan struct{}
}

// Await waits for the computation to complete and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.val, f.err
}

// AwaitWithTimeout waits for the computation with a timeout.
// Returns ErrTimeout if the computation has not finished in time; the computation keeps running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the computation is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn(ctx, param) in a new goroutine and returns a Future for its result.
// If ctx is already cancelled, fn is not called and the Future resolves with ctx.Err().
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents goroutine leak when context is pre-canceled
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.val, f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll waits for all futures and returns their results in order.
// The first error encountered, in order, is returned alongside all results.
// Calling it without futures returns ErrNoFutures.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	if len(futures) == 0 {
		return nil, ErrNoFutures
	}
	results := make([]U, len(futures))
	var firstErr error
	for i, future := range futures {
		val, err := future.Await()
		results[i] = val
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}
