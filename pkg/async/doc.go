// Package async provides deferred values for composing asynchronous work.
//
// The package is centred around the generic type Future that represents the
// eventual result of an asynchronous operation. A Future settles exactly once,
// either resolved with a value or rejected with an error, and is observed with
// Await, AwaitContext, AwaitWithTimeout, Done or IsComplete.
//
// Futures are obtained in three ways:
//
//   - New mirrors a promise constructor: an executor function receives resolve
//     and reject callbacks and may settle the future from any goroutine.
//   - Call adapts a callback-style operation that reports completion through a
//     trailing (result, err) callback.
//   - Resolved and Rejected return futures that are already settled.
//
// New and Call never let a panic escape: a panic raised while invoking the
// executor rejects the future with a *PanicError, so callers always observe
// failures through the future rather than a mix of panics and rejections.
//
// # Executors
//
// Where the executor function runs is decided by an Executor. GoExecutor
// starts a goroutine per task and is used when nil is passed. PoolExecutor
// bounds concurrency with an ants worker pool:
//
//	pool, err := async.NewPoolExecutor(16)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(time.Second)
//
//	f := async.Call(pool, func(done func(string, error)) {
//	    legacyFetch("key", done)
//	})
//	v, err := f.Await()
//
// # Combinators
//
// WaitAll collects every result and stops at the first error in argument
// order. WaitAny returns the first future to settle.
//
// # Error Handling
//
// Rejections carry the error reported by the operation untouched. The package
// adds ErrTimeout for AwaitWithTimeout, ErrNoFutures for WaitAny, ErrRejected
// for a rejection without an error, ErrSubmit when an executor refuses a task,
// and PanicError (matching ErrPanic) for recovered panics.
package async
