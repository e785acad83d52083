package async_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/srvkit/pkg/async"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("resolves with value", func(t *testing.T) {
		t.Parallel()
		f := async.New(nil, func(resolve func(int), _ func(error)) {
			resolve(42)
		})
		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("rejects with error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := async.New(nil, func(_ func(int), reject func(error)) {
			reject(boom)
		})
		v, err := f.Await()
		assert.Same(t, boom, err)
		assert.Zero(t, v)
	})

	t.Run("first settlement wins", func(t *testing.T) {
		t.Parallel()
		f := async.New(nil, func(resolve func(string), reject func(error)) {
			resolve("first")
			reject(errors.New("ignored"))
			resolve("second")
		})
		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "first", v)
	})

	t.Run("nil rejection becomes ErrRejected", func(t *testing.T) {
		t.Parallel()
		f := async.New(nil, func(_ func(int), reject func(error)) {
			reject(nil)
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, async.ErrRejected)
	})

	t.Run("panic rejects", func(t *testing.T) {
		t.Parallel()
		f := async.New(nil, func(_ func(int), _ func(error)) {
			panic("kaboom")
		})
		_, err := f.Await()
		require.Error(t, err)
		assert.ErrorIs(t, err, async.ErrPanic)

		var pe *async.PanicError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "kaboom", pe.Value)
	})

	t.Run("panic with error unwraps", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("cause")
		f := async.New(nil, func(_ func(int), _ func(error)) {
			panic(cause)
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, async.ErrPanic)
	})

	t.Run("panic after resolve keeps value", func(t *testing.T) {
		t.Parallel()
		f := async.New(nil, func(resolve func(int), _ func(error)) {
			resolve(7)
			panic("late")
		})
		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("resolve from another goroutine", func(t *testing.T) {
		t.Parallel()
		f := async.New(nil, func(resolve func(int), _ func(error)) {
			go func() {
				time.Sleep(10 * time.Millisecond)
				resolve(9)
			}()
		})
		assert.False(t, f.IsComplete())
		v, err := f.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, 9, v)
	})
}

type refusingExecutor struct{ err error }

func (e refusingExecutor) Submit(func()) error { return e.err }

func TestNewExecutorRefusal(t *testing.T) {
	t.Parallel()
	refusal := errors.New("full")
	f := async.New(refusingExecutor{err: refusal}, func(resolve func(int), _ func(error)) {
		resolve(1)
	})
	_, err := f.Await()
	assert.ErrorIs(t, err, refusal)
}

func TestCall(t *testing.T) {
	t.Parallel()

	t.Run("success payload", func(t *testing.T) {
		t.Parallel()
		f := async.Call(nil, func(done func(string, error)) {
			done("ok", nil)
		})
		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
	})

	t.Run("error passes through untouched", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := async.Call(nil, func(done func(string, error)) {
			done("ignored", boom)
		})
		v, err := f.Await()
		assert.Same(t, boom, err)
		assert.Empty(t, v)
	})

	t.Run("synchronous panic rejects", func(t *testing.T) {
		t.Parallel()
		f := async.Call(nil, func(done func(string, error)) {
			panic(errors.New("thrown"))
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, async.ErrPanic)
		assert.EqualError(t, errors.Unwrap(err), "thrown")
	})

	t.Run("callback invoked twice settles once", func(t *testing.T) {
		t.Parallel()
		f := async.Call(nil, func(done func(int, error)) {
			done(1, nil)
			done(2, errors.New("second"))
		})
		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})
}

func TestResolvedRejected(t *testing.T) {
	t.Parallel()

	r := async.Resolved("v")
	assert.True(t, r.IsComplete())
	v, err := r.Await()
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	boom := errors.New("boom")
	j := async.Rejected[int](boom)
	assert.True(t, j.IsComplete())
	_, err = j.Await()
	assert.Same(t, boom, err)

	_, err = async.Rejected[int](nil).Await()
	assert.ErrorIs(t, err, async.ErrRejected)
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	never := async.New(nil, func(func(int), func(error)) {})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := never.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	v, err := async.Resolved(3).AwaitContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestDone(t *testing.T) {
	t.Parallel()

	f := async.Resolved(1)
	select {
	case <-f.Done():
	case <-time.After(time.Second):
		require.Fail(t, "done channel not closed")
	}
}

func TestPoolExecutor(t *testing.T) {
	t.Parallel()

	pool, err := async.NewPoolExecutor(4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Release(time.Second) })
	assert.Equal(t, 4, pool.Cap())

	var ran atomic.Int32
	var wg sync.WaitGroup
	futures := make([]*async.Future[int], 0, 20)
	for i := range 20 {
		wg.Add(1)
		futures = append(futures, async.Call(pool, func(done func(int, error)) {
			defer wg.Done()
			ran.Add(1)
			done(i, nil)
		}))
	}
	wg.Wait()

	results, err := async.WaitAll(futures...)
	require.NoError(t, err)
	assert.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, i, r)
	}
	assert.EqualValues(t, 20, ran.Load())
}

func TestPoolExecutorPanicRejects(t *testing.T) {
	t.Parallel()

	pool, err := async.NewPoolExecutor(1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Release(time.Second) })

	f := async.Call(pool, func(done func(int, error)) {
		panic("in pool")
	})
	_, err = f.Await()
	assert.ErrorIs(t, err, async.ErrPanic)

	// the worker survives and keeps serving tasks
	v, err := async.Call(pool, func(done func(int, error)) { done(5, nil) }).Await()
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestPoolExecutorReleased(t *testing.T) {
	t.Parallel()

	pool, err := async.NewPoolExecutor(1)
	require.NoError(t, err)
	require.NoError(t, pool.Release(time.Second))

	_, err = async.Call(pool, func(done func(int, error)) { done(1, nil) }).Await()
	assert.ErrorIs(t, err, async.ErrSubmit)
}
