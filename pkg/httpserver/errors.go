package httpserver

import "errors"

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
	// ErrAlreadyRunning is joined with ErrStart or ErrRegister when the server is already serving.
	ErrAlreadyRunning = errors.New("server already running")
	// ErrRegister indicates that a plugin could not be registered.
	ErrRegister = errors.New("failed to register plugin")
	// ErrNilPlugin is joined with ErrRegister for nil entries in the plugin list.
	ErrNilPlugin = errors.New("nil plugin")
)

// ErrHandlerPanic is joined with the recovered value when a handler panics.
var ErrHandlerPanic = errors.New("handler panicked")
