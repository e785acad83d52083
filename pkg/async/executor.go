package async

import (
	"errors"
	"time"

	"github.com/panjf2000/ants/v2"
)

// Executor decides where a future's executor function runs.
type Executor interface {
	Submit(task func()) error
}

// GoExecutor runs every task on a fresh goroutine. It is the default.
type GoExecutor struct{}

// Submit starts task on a new goroutine. It never fails.
func (GoExecutor) Submit(task func()) error {
	go task()
	return nil
}

// PoolExecutor runs tasks on a bounded ants worker pool.
type PoolExecutor struct {
	pool *ants.Pool
}

// NewPoolExecutor creates a worker pool with the given capacity.
// Panics inside tasks are already turned into rejections by New, so the pool's
// own panic handler only sees panics from foreign tasks.
func NewPoolExecutor(size int, opts ...ants.Option) (*PoolExecutor, error) {
	pool, err := ants.NewPool(size, opts...)
	if err != nil {
		return nil, errors.Join(ErrSubmit, err)
	}
	return &PoolExecutor{pool: pool}, nil
}

// Submit queues task on the pool. A released or overloaded pool returns an
// error joined with ErrSubmit.
func (p *PoolExecutor) Submit(task func()) error {
	if err := p.pool.Submit(task); err != nil {
		return errors.Join(ErrSubmit, err)
	}
	return nil
}

// Running returns the number of workers currently executing tasks.
func (p *PoolExecutor) Running() int {
	return p.pool.Running()
}

// Cap returns the pool capacity.
func (p *PoolExecutor) Cap() int {
	return p.pool.Cap()
}

// Release closes the pool, waiting up to timeout for running tasks.
func (p *PoolExecutor) Release(timeout time.Duration) error {
	return p.pool.ReleaseTimeout(timeout)
}
