package healthcheck

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/srvkit/pkg/async"
	"github.com/dmitrymomot/srvkit/pkg/httpserver"
	"github.com/dmitrymomot/srvkit/pkg/logger"
)

// ErrHealthcheckFailed is joined with the driver error of a failing check.
var ErrHealthcheckFailed = errors.New("healthcheck failed")

// Check reports whether a dependency is ready.
type Check func(ctx context.Context) error

// Paths are the probe routes.
type Paths struct {
	Live  string
	Ready string
}

// DefaultPaths returns /healthz and /readyz.
func DefaultPaths() Paths {
	return Paths{Live: "/healthz", Ready: "/readyz"}
}

// Plugin mounts the probes. Empty paths fall back to DefaultPaths; a nil log
// discards failure details.
func Plugin(paths Paths, log *slog.Logger, checks ...Check) httpserver.Plugin {
	def := DefaultPaths()
	if paths.Live == "" {
		paths.Live = def.Live
	}
	if paths.Ready == "" {
		paths.Ready = def.Ready
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return httpserver.NewPlugin("healthcheck", func(r chi.Router) error {
		r.Get(paths.Live, LiveHandler())
		r.Get(paths.Ready, ReadyHandler(log, checks...))
		return nil
	})
}

// LiveHandler answers 200 "ALIVE".
func LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// ReadyHandler runs checks concurrently with the request context and answers
// 200 "READY" or 503 "NOT_READY".
func ReadyHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pending := make([]*async.Future[struct{}], 0, len(checks))
		for _, check := range checks {
			if check == nil {
				continue
			}
			pending = append(pending, async.Call(nil, func(done func(struct{}, error)) {
				done(struct{}{}, check(ctx))
			}))
		}

		if _, err := async.WaitAll(pending...); err != nil {
			log.ErrorContext(ctx, "Readiness check failed", logger.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}

// Redis pings client.
func Redis(client redis.UniversalClient) Check {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Postgres pings the pool.
func Postgres(pool *pgxpool.Pool) Check {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// WithTimeout bounds check with d.
func WithTimeout(check Check, d time.Duration) Check {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return check(ctx)
	}
}
