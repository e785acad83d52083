package lifecycle

import (
	"time"

	"dario.cat/mergo"

	"github.com/dmitrymomot/srvkit/pkg/async"
	"github.com/dmitrymomot/srvkit/pkg/httpserver"
)

// DefaultStopTimeout is the graceful shutdown budget used when Stop is called
// without one.
const DefaultStopTimeout = 500 * time.Millisecond

// Handle is the callback-style server surface adapted by Adapter.
type Handle interface {
	Start(done func(error))
	Stop(opts httpserver.StopOptions, done func(error))
	Register(plugins []httpserver.Plugin, done func(error))
	Inject(opts httpserver.InjectOptions, done func(*httpserver.InjectResponse))
}

// Adapter exposes a Handle's operations as futures.
type Adapter struct {
	handle      Handle
	exec        async.Executor
	stopDefault httpserver.StopOptions
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithExecutor sets where handle operations run. Nil keeps the default.
func WithExecutor(exec async.Executor) Option {
	return func(a *Adapter) {
		if exec != nil {
			a.exec = exec
		}
	}
}

// WithStopTimeout overrides DefaultStopTimeout for this adapter.
func WithStopTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.stopDefault.Timeout = d
		}
	}
}

// New wraps h.
func New(h Handle, opts ...Option) *Adapter {
	a := &Adapter{
		handle:      h,
		exec:        async.GoExecutor{},
		stopDefault: httpserver.StopOptions{Timeout: DefaultStopTimeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewFromConfig wraps h using cfg. A positive PoolSize runs operations on a
// bounded worker pool; the returned release function frees it and is a no-op
// otherwise.
func NewFromConfig(h Handle, cfg Config, opts ...Option) (*Adapter, func(), error) {
	release := func() {}
	base := []Option{WithStopTimeout(cfg.StopTimeout)}

	if cfg.PoolSize > 0 {
		pool, err := async.NewPoolExecutor(cfg.PoolSize)
		if err != nil {
			return nil, nil, err
		}
		base = append(base, WithExecutor(pool))
		release = func() { _ = pool.Release(cfg.StopTimeout + time.Second) }
	}

	return New(h, append(base, opts...)...), release, nil
}

// Instance returns the wrapped handle.
func (a *Adapter) Instance() Handle {
	return a.handle
}

// Start starts the server.
func (a *Adapter) Start() *async.Future[struct{}] {
	return a.call(func(done func(error)) {
		a.handle.Start(done)
	})
}

// Stop stops the server. Fields left zero or negative in opts, or a nil opts,
// take the adapter defaults; fields that are set are kept.
func (a *Adapter) Stop(opts *httpserver.StopOptions) *async.Future[struct{}] {
	merged := httpserver.StopOptions{}
	if opts != nil {
		merged = *opts
	}
	if merged.Timeout < 0 {
		// mergo only fills zero fields
		merged.Timeout = 0
	}
	if err := mergo.Merge(&merged, a.stopDefault); err != nil {
		return async.Rejected[struct{}](err)
	}

	return a.call(func(done func(error)) {
		a.handle.Stop(merged, done)
	})
}

// Register installs plugins in the given order.
func (a *Adapter) Register(plugins ...httpserver.Plugin) *async.Future[struct{}] {
	list := append([]httpserver.Plugin(nil), plugins...)
	return a.call(func(done func(error)) {
		a.handle.Register(list, done)
	})
}

// Inject performs a synthetic request. The future never rejects because of the
// response status; it only rejects if invoking the handle panics.
func (a *Adapter) Inject(opts httpserver.InjectOptions) *async.Future[*httpserver.InjectResponse] {
	return async.New(a.exec, func(resolve func(*httpserver.InjectResponse), _ func(error)) {
		a.handle.Inject(opts, resolve)
	})
}

func (a *Adapter) call(op func(done func(error))) *async.Future[struct{}] {
	return async.Call(a.exec, func(done func(struct{}, error)) {
		op(func(err error) { done(struct{}{}, err) })
	})
}
