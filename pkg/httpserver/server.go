package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/srvkit/pkg/logger"
	"github.com/dmitrymomot/srvkit/pkg/requestid"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger
	middlewares     []func(http.Handler) http.Handler
	startHooks      []func(*slog.Logger)
	stopHooks       []func(*slog.Logger)
}

func defaultConfig() *config {
	return &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
}

// StopOptions controls a single Stop call.
type StopOptions struct {
	// Timeout bounds graceful shutdown. Connections still open afterwards are
	// closed forcibly. Zero falls back to the configured shutdown timeout.
	Timeout time.Duration
}

// instance is one listen/serve cycle.
type instance struct {
	srv  *http.Server
	ln   net.Listener
	done chan struct{}
	err  error // written before done is closed
}

// Server is a chi-routed HTTP server exposing callback-style lifecycle
// operations and an observer interface for its log, request-error and
// response events.
type Server struct {
	cfg     *config
	router  chi.Router
	handler http.Handler
	events  *listeners
	mu      sync.Mutex
	running *instance
	plugins []string
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		events: &listeners{},
	}
	// Middleware wraps the router from outside: a chi mux without routes
	// bypasses its own middleware stack, and every request must be observed.
	mws := append([]func(http.Handler) http.Handler{requestid.Middleware, s.observe}, cfg.middlewares...)
	s.handler = chi.Chain(mws...).Handler(s.router)
	return s
}

// Handler returns the root handler, including request id and event middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the bound listener address, or an empty string when stopped.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running == nil {
		return ""
	}
	return s.running.ln.Addr().String()
}

// Start binds the listener and begins serving in the background. done is
// called with nil once the server accepts connections, or with an error
// wrapped with ErrStart.
func (s *Server) Start(done func(error)) {
	_, err := s.start()
	done(err)
}

func (s *Server) start() (*instance, error) {
	s.mu.Lock()
	if s.running != nil {
		s.mu.Unlock()
		return nil, errors.Join(ErrStart, ErrAlreadyRunning)
	}

	srv := s.newHTTPServer()
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		s.mu.Unlock()
		return nil, errors.Join(ErrStart, err)
	}

	inst := &instance{srv: srv, ln: ln, done: make(chan struct{})}
	s.running = inst
	s.mu.Unlock()

	go func() {
		defer close(inst.done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			inst.err = err
			s.cfg.logger.Error("http server stopped unexpectedly", logger.Error(err))
		}
	}()

	for _, h := range s.cfg.startHooks {
		h(s.cfg.logger)
	}

	s.cfg.logger.Info("http server started", logger.Addr(ln.Addr().String()))
	s.Log(fmt.Sprintf("server started at %s", ln.Addr()), "start")
	return inst, nil
}

// newHTTPServer builds a fresh http.Server for every start so the server can
// be stopped and started again. Settings from WithServer act as a template.
func (s *Server) newHTTPServer() *http.Server {
	cfg := s.cfg
	srv := &http.Server{}
	if tpl := cfg.server; tpl != nil {
		srv.Addr = tpl.Addr
		srv.TLSConfig = tpl.TLSConfig
		srv.ReadTimeout = tpl.ReadTimeout
		srv.ReadHeaderTimeout = tpl.ReadHeaderTimeout
		srv.WriteTimeout = tpl.WriteTimeout
		srv.IdleTimeout = tpl.IdleTimeout
		srv.MaxHeaderBytes = tpl.MaxHeaderBytes
		srv.ErrorLog = tpl.ErrorLog
		srv.BaseContext = tpl.BaseContext
		srv.ConnContext = tpl.ConnContext
	}

	if srv.Addr == "" {
		srv.Addr = cfg.addr
	}
	if srv.ReadTimeout == 0 && cfg.readTimeout != 0 {
		srv.ReadTimeout = cfg.readTimeout
	}
	if srv.WriteTimeout == 0 && cfg.writeTimeout != 0 {
		srv.WriteTimeout = cfg.writeTimeout
	}
	if srv.IdleTimeout == 0 && cfg.idleTimeout != 0 {
		srv.IdleTimeout = cfg.idleTimeout
	}
	srv.Handler = s.handler
	return srv
}

// Stop shuts the server down gracefully and calls done when the listener is
// closed. Stopping a server that is not running succeeds.
func (s *Server) Stop(opts StopOptions, done func(error)) {
	done(s.stop(opts))
}

func (s *Server) stop(opts StopOptions) error {
	s.mu.Lock()
	inst := s.running
	s.running = nil
	s.mu.Unlock()

	if inst == nil {
		return nil
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.cfg.shutdownTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := inst.srv.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		// the timeout bounds the drain, it is not a failure
		s.cfg.logger.Warn("graceful shutdown timed out, closing connections", logger.Duration(timeout))
		err = inst.srv.Close()
	}
	<-inst.done

	for _, h := range s.cfg.stopHooks {
		h(s.cfg.logger)
	}

	s.cfg.logger.Info("http server stopped")
	s.Log("server stopped", "stop")

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}

// Run starts the server and blocks until ctx is cancelled, an interrupt or
// TERM signal arrives, or the server fails. It then stops the server.
// It returns ErrStart wrapped with the underlying error if the server fails to start.
func (s *Server) Run(ctx context.Context) error {
	inst, err := s.start()
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case <-ctx.Done():
	case <-sig:
	case <-inst.done:
		_ = s.stop(StopOptions{})
		if inst.err != nil {
			return errors.Join(ErrStart, inst.err)
		}
		return nil
	}

	return s.stop(StopOptions{})
}
