package httpserver

import (
	"net/url"
	"sync"
	"time"
)

// Event names emitted by the server.
const (
	EventLog          = "log"
	EventRequestError = "request-error"
	EventResponse     = "response"
)

// LogEvent is a server-level informational event.
type LogEvent struct {
	Tags      []string
	Data      any
	Timestamp time.Time
}

// Request is the read-only view of a request handed to listeners.
type Request struct {
	ID     string
	Method string
	Path   string
	Query  url.Values
	// Response is nil until the request has been answered. It stays nil when
	// the client went away before anything was written.
	Response *Response
}

// Response describes a finalised response.
type Response struct {
	StatusCode int
	Bytes      int
	Duration   time.Duration
}

// listeners is the observer registry behind OnLog, OnRequestError and OnResponse.
// Dispatch is synchronous and runs over a snapshot, so a listener may subscribe
// further listeners without deadlocking.
type listeners struct {
	mu           sync.RWMutex
	log          []func(LogEvent)
	requestError []func(*Request, error)
	response     []func(*Request)
}

func (l *listeners) onLog(fn func(LogEvent)) {
	l.mu.Lock()
	l.log = append(l.log, fn)
	l.mu.Unlock()
}

func (l *listeners) onRequestError(fn func(*Request, error)) {
	l.mu.Lock()
	l.requestError = append(l.requestError, fn)
	l.mu.Unlock()
}

func (l *listeners) onResponse(fn func(*Request)) {
	l.mu.Lock()
	l.response = append(l.response, fn)
	l.mu.Unlock()
}

func (l *listeners) emitLog(ev LogEvent) {
	l.mu.RLock()
	fns := l.log
	l.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (l *listeners) emitRequestError(r *Request, err error) {
	l.mu.RLock()
	fns := l.requestError
	l.mu.RUnlock()
	for _, fn := range fns {
		fn(r, err)
	}
}

func (l *listeners) emitResponse(r *Request) {
	l.mu.RLock()
	fns := l.response
	l.mu.RUnlock()
	for _, fn := range fns {
		fn(r)
	}
}

// OnLog subscribes fn to log events. Nil listeners are ignored.
func (s *Server) OnLog(fn func(LogEvent)) {
	if fn != nil {
		s.events.onLog(fn)
	}
}

// OnRequestError subscribes fn to request-error events, fired when a handler
// panics or reports a failure through Fail.
func (s *Server) OnRequestError(fn func(*Request, error)) {
	if fn != nil {
		s.events.onRequestError(fn)
	}
}

// OnResponse subscribes fn to response events, fired once per request after
// the handler returns.
func (s *Server) OnResponse(fn func(*Request)) {
	if fn != nil {
		s.events.onResponse(fn)
	}
}

// Log emits a log event with the given tags.
func (s *Server) Log(data any, tags ...string) {
	s.events.emitLog(LogEvent{Tags: tags, Data: data, Timestamp: time.Now()})
}
