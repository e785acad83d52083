package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/srvkit/pkg/httpserver"
	"github.com/dmitrymomot/srvkit/pkg/logger"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and block until interrupted",
		Long: `Start the HTTP server and block until SIGINT or SIGTERM.

Configuration comes from the environment (HTTP_ADDR, HTTP_STOP_TIMEOUT,
LIFECYCLE_POOL_SIZE, LOG_LEVEL, LOG_FORMAT, APP_ENV, REDIS_URL, PG_CONN_URL).

Examples:
  # Serve on the default address
  srvkit serve

  # Serve on a custom address with JSON logs
  LOG_FORMAT=json srvkit serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, cmd)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

func serve(ctx context.Context, cfg appConfig, cmd *cobra.Command) error {
	a, err := newApp(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.adapter.Start().Await(); err != nil {
		return err
	}
	a.log.Info("serving", logger.Addr(a.server.Addr()), logger.Component("srvkit"))

	<-ctx.Done()

	_, err = a.adapter.Stop(&httpserver.StopOptions{}).Await()
	return err
}
