package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/srvkit/pkg/accesslog"
	"github.com/dmitrymomot/srvkit/pkg/config"
	"github.com/dmitrymomot/srvkit/pkg/healthcheck"
	"github.com/dmitrymomot/srvkit/pkg/httpserver"
	"github.com/dmitrymomot/srvkit/pkg/lifecycle"
	"github.com/dmitrymomot/srvkit/pkg/logger"
	"github.com/dmitrymomot/srvkit/pkg/requestid"
)

type appConfig struct {
	Logger    logger.Config
	HTTP      httpserver.Config
	Lifecycle lifecycle.Config
	Health    healthcheck.Config
}

// app is a fully wired server plus its adapter.
type app struct {
	log     *slog.Logger
	server  *httpserver.Server
	adapter *lifecycle.Adapter
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	err := config.Load(&cfg, envFiles...)
	return cfg, err
}

// newApp wires logger, server, access log, adapter and plugins. out receives
// log output.
func newApp(ctx context.Context, cfg appConfig, out io.Writer, opts ...httpserver.Option) (*app, error) {
	log, err := logger.NewFromConfig(cfg.Logger,
		logger.WithOutput(out),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	if err != nil {
		return nil, err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, append([]httpserver.Option{httpserver.WithLogger(log)}, opts...)...)

	paths := healthcheck.DefaultPaths()
	quiet := func(*httpserver.Request) accesslog.Line { return accesslog.Suppress() }
	accesslog.Bind(srv, accesslog.SlogSink(log), accesslog.Formatters{
		paths.Live:  quiet,
		paths.Ready: quiet,
	})

	a := &app{log: log, server: srv}

	adapter, release, err := lifecycle.NewFromConfig(srv, cfg.Lifecycle)
	if err != nil {
		return nil, err
	}
	a.adapter = adapter
	a.closers = append(a.closers, release)

	checks, closeChecks, err := healthcheck.Connect(ctx, cfg.Health)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, closeChecks)

	if _, err := adapter.Register(
		healthcheck.Plugin(paths, log, checks...),
		echoPlugin(),
	).Await(); err != nil {
		a.close()
		return nil, err
	}

	return a, nil
}

// echoPlugin answers GET /echo with the request id and query as JSON.
func echoPlugin() httpserver.Plugin {
	return httpserver.NewPlugin("echo", func(r chi.Router) error {
		r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(map[string]any{
				"request_id": requestid.FromContext(r.Context()),
				"query":      r.URL.Query(),
			})
			if err != nil {
				httpserver.Fail(w, r, err)
			}
		})
		return nil
	})
}
