package async

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTimeout is returned by AwaitWithTimeout when the computation is still running.
	ErrTimeout = errors.New("async: timeout waiting for result")

	// ErrNoFutures is returned by WaitAny when called without futures.
	ErrNoFutures = errors.New("async: no futures provided")
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	val  U
	err  error
	done chan struct{}
}

// Async executes fn on its own goroutine with param and returns a Future for its result.
// If ctx is already cancelled, fn is not called and the Future resolves to ctx.Err().
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents running work for a caller that already gave up
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

// Await waits for the computation to complete and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.val, f.err
}

// AwaitWithTimeout waits for the computation up to timeout.
// If the timeout occurs first, it returns the zero value and ErrTimeout;
// the computation keeps running and can still be awaited later.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.val, f.err
	case <-timer.C:
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

// Done returns a channel closed when the computation completes.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// WaitAll waits for all futures and returns their results in order.
// It returns the first error in future order, together with all values collected.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	vals := make([]U, len(futures))
	var firstErr error
	for i, f := range futures {
		v, err := f.Await()
		vals[i] = v
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return vals, firstErr
}

// WaitAny waits for the first future to complete and returns its index and result.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	var zero U
	if len(futures) == 0 {
		return -1, zero, ErrNoFutures
	}

	type completion struct {
		index int
		val   U
		err   error
	}

	// Buffered so that late finishers never block.
	done := make(chan completion, len(futures))
	for i, f := range futures {
		go func(index int, f *Future[U]) {
			<-f.done
			done <- completion{index: index, val: f.val, err: f.err}
		}(i, f)
	}

	c := <-done
	return c.index, c.val, c.err
}
