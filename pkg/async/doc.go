// Package async provides utilities for asynchronous programming with Go generics.
//
// This package implements a Future pattern for non-blocking operations with timeout support,
// and a last-request-wins gate for callers that issue overlapping computations.
//
// # Core Types
//
// Future[U] represents the result of an asynchronous computation. It provides methods
// to wait for completion (Await), check status without blocking (IsComplete), and
// handle timeouts (AwaitWithTimeout).
//
// Latest[T] tracks which of several overlapping requests is the newest, so that
// results arriving out of order never replace a newer one.
//
// # Usage
//
//	future := async.Async(ctx, token, func(ctx context.Context, token string) (*analyzer.Result, error) {
//		return a.Analyze(ctx, token), nil
//	})
//
//	res, err := future.AwaitWithTimeout(time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("analysis timed out")
//	}
//
// WaitAll waits for every future and keeps the input order:
//
//	results, err := async.WaitAll(futures...)
//
// Discarding stale results:
//
//	var latest async.Latest[*analyzer.Result]
//
//	ticket := latest.Begin()
//	go func() {
//		res := a.Analyze(ctx, input)
//		if latest.Deliver(ticket, res) {
//			render(res)
//		}
//	}()
//
// # Context Support
//
// If a context is cancelled before the async function begins execution, the
// Future resolves immediately with the context's error. Cancellation after that
// point is up to the function itself.
package async
