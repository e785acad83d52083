package httpserver

import (
	"errors"
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/srvkit/pkg/logger"
)

// Plugin contributes routes or middleware to the server router.
type Plugin interface {
	Name() string
	Register(r chi.Router) error
}

type pluginFunc struct {
	name string
	fn   func(chi.Router) error
}

func (p pluginFunc) Name() string { return p.name }

func (p pluginFunc) Register(r chi.Router) error { return p.fn(r) }

// NewPlugin wraps fn as a named Plugin.
func NewPlugin(name string, fn func(chi.Router) error) Plugin {
	return pluginFunc{name: name, fn: fn}
}

// Register installs plugins in order and calls done when finished. The first
// failing plugin stops the sequence; its error is joined with ErrRegister.
// Registration is not transactional: plugins of the batch that ran before the
// failure keep their routes and are listed by Plugins.
// The same plugin may be registered more than once. Registration is refused
// while the server is running because the router is not safe for concurrent
// modification.
func (s *Server) Register(plugins []Plugin, done func(error)) {
	done(s.register(plugins))
}

func (s *Server) register(plugins []Plugin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running != nil {
		return errors.Join(ErrRegister, ErrAlreadyRunning)
	}

	for i, p := range plugins {
		if p == nil {
			return errors.Join(ErrRegister, fmt.Errorf("plugin #%d: %w", i, ErrNilPlugin))
		}
		if err := registerOne(s.router, p); err != nil {
			return errors.Join(ErrRegister, fmt.Errorf("plugin %q: %w", p.Name(), err))
		}
		s.plugins = append(s.plugins, p.Name())
		s.cfg.logger.Debug("plugin registered", logger.Plugin(p.Name()))
	}
	return nil
}

// registerOne converts router panics, such as chi's middleware-after-routes
// check, into errors.
func registerOne(r chi.Router, p Plugin) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()
	return p.Register(r)
}

// Plugins lists registered plugin names in registration order.
func (s *Server) Plugins() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.plugins))
	copy(out, s.plugins)
	return out
}
