// Package async provides a generic Future for running work on its own goroutine.
//
// Future[U] holds the result of one asynchronous computation. Await blocks until
// it completes, AwaitWithTimeout bounds the wait, and IsComplete polls.
//
// # Usage
//
//	future := async.Async(ctx, "user:1", func(ctx context.Context, key string) (string, error) {
//		return client.Get(ctx, key).Result()
//	})
//
//	// Do other work...
//
//	name, err := future.Await()
//
// With a timeout:
//
//	name, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		// still running; Await can be called again later
//	}
//
// # Coordination Utilities
//
// WaitAll waits for every future and returns the values in order with the first error:
//
//	vals, err := async.WaitAll(f1, f2, f3)
//
// WaitAny returns as soon as one future completes:
//
//	index, val, err := async.WaitAny(f1, f2, f3)
//
// # Errors
//
//   - ErrTimeout: AwaitWithTimeout exceeded its duration
//   - ErrNoFutures: WaitAny called without futures
//
// If the context is cancelled before the function starts, the function is not
// called and the future resolves to the context error.
package async
