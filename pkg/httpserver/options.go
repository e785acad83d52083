package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures the HTTP server. Zero values and nil arguments leave the
// current setting untouched, so options can be fed straight from a Config.
type Option func(*config)

// WithAddr sets the listen address. Port 0 picks a free port; see Addr.
func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

// WithReadTimeout bounds reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.readTimeout, d) }
}

// WithWriteTimeout bounds writing the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.writeTimeout, d) }
}

// WithIdleTimeout bounds keep-alive idle time.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.idleTimeout, d) }
}

// WithShutdownTimeout is the graceful shutdown budget used when Stop gets no
// timeout of its own.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.shutdownTimeout, d) }
}

func setDuration(dst *time.Duration, d time.Duration) {
	if d > 0 {
		*dst = d
	}
}

// WithServer uses srv as a template for the http.Server built on every start.
// Its address, TLS and timeout settings win over the other options; its
// Handler is ignored.
func WithServer(srv *http.Server) Option {
	return func(c *config) {
		if srv != nil {
			c.server = srv
		}
	}
}

// WithLogger sets the logger for server diagnostics. Without it logs are
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMiddleware appends middleware that wraps the router inside the request
// id and event layers, so listeners observe whatever the middleware writes.
func WithMiddleware(mws ...func(http.Handler) http.Handler) Option {
	return func(c *config) {
		for _, mw := range mws {
			if mw != nil {
				c.middlewares = append(c.middlewares, mw)
			}
		}
	}
}

// WithStartHook runs h after every successful start, once the listener is
// bound.
func WithStartHook(h func(*slog.Logger)) Option {
	return func(c *config) {
		if h != nil {
			c.startHooks = append(c.startHooks, h)
		}
	}
}

// WithStopHook runs h after every stop, once the serve loop has exited.
func WithStopHook(h func(*slog.Logger)) Option {
	return func(c *config) {
		if h != nil {
			c.stopHooks = append(c.stopHooks, h)
		}
	}
}
