package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
// A Future settles exactly once; later resolve or reject attempts are ignored.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// settle stores the outcome and releases waiters. It reports whether this call
// was the one that settled the future.
func (f *Future[U]) settle(res U, err error) bool {
	settled := false
	f.once.Do(func() {
		f.result = res
		f.err = err
		settled = true
		close(f.done)
	})
	return settled
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or until ctx is done, whichever happens first.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// Returns the result and error if the function completes before the timeout.
// If the timeout occurs before completion, returns a timeout error.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// Done returns a channel that is closed once the future settles.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the asynchronous function is complete without blocking.
// Returns true if the function has completed, false otherwise.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// New builds a Future from an executor function in the manner of a promise
// constructor. fn runs on exec (GoExecutor when nil) and settles the future by
// calling resolve or reject. A panic inside fn rejects the future with a
// *PanicError instead of crashing the caller. If exec refuses the task, the
// future is rejected with the submission error.
func New[U any](exec Executor, fn func(resolve func(U), reject func(error))) *Future[U] {
	f := newFuture[U]()
	if exec == nil {
		exec = GoExecutor{}
	}

	resolve := func(v U) { f.settle(v, nil) }
	reject := func(err error) {
		if err == nil {
			err = ErrRejected
		}
		var zero U
		f.settle(zero, err)
	}

	task := func() {
		defer func() {
			if r := recover(); r != nil {
				reject(newPanicError(r))
			}
		}()
		fn(resolve, reject)
	}

	if err := exec.Submit(task); err != nil {
		reject(err)
	}
	return f
}

// Call adapts a callback-style operation into a Future. target receives a
// trailing completion callback of shape (result, err): a non-nil err rejects the
// future with that exact error, otherwise the future resolves with result.
// Leading arguments are bound by the caller's closure.
func Call[U any](exec Executor, target func(done func(U, error))) *Future[U] {
	return New(exec, func(resolve func(U), reject func(error)) {
		target(func(res U, err error) {
			if err != nil {
				reject(err)
				return
			}
			resolve(res)
		})
	})
}

// Resolved returns an already settled Future holding v.
func Resolved[U any](v U) *Future[U] {
	f := newFuture[U]()
	f.settle(v, nil)
	return f
}

// Rejected returns an already settled Future holding err.
func Rejected[U any](err error) *Future[U] {
	if err == nil {
		err = ErrRejected
	}
	f := newFuture[U]()
	var zero U
	f.settle(zero, err)
	return f
}

// WaitAll waits for all futures to complete and returns a slice of their results and an error
// if any of the futures returned an error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// WaitAny waits for any of the futures to complete and returns the index of the completed future,
// its result, and any error it might have returned.
// Note: This function spawns one goroutine per future. All goroutines will complete naturally
// when their respective futures finish.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	type outcome struct {
		index  int
		result U
		err    error
	}

	// Buffered so late finishers never block once the first result is taken.
	done := make(chan outcome, len(futures))

	for i, future := range futures {
		go func(index int, f *Future[U]) {
			result, err := f.Await()
			done <- outcome{index, result, err}
		}(i, future)
	}

	res := <-done
	return res.index, res.result, res.err
}
