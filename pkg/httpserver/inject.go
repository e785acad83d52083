package httpserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
)

// InjectOptions describes a synthetic request.
type InjectOptions struct {
	Method     string // defaults to GET
	URL        string // path with optional query, defaults to "/"
	Header     http.Header
	Body       []byte
	RemoteAddr string
}

// InjectResponse is the outcome of a synthetic request.
type InjectResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Payload returns the body as a string.
func (r *InjectResponse) Payload() string {
	return string(r.Body)
}

// Inject dispatches a request through the full handler chain without touching
// the network, whether or not the server is started. done always receives a
// response: malformed options yield 400 Bad Request.
func (s *Server) Inject(opts InjectOptions, done func(*InjectResponse)) {
	done(s.inject(opts))
}

func (s *Server) inject(opts InjectOptions) *InjectResponse {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}
	target := opts.URL
	if target == "" {
		target = "/"
	}

	req, err := http.NewRequestWithContext(context.Background(), method, target, bytes.NewReader(opts.Body))
	if err != nil {
		return &InjectResponse{
			StatusCode: http.StatusBadRequest,
			Header:     http.Header{"Content-Type": {"text/plain; charset=utf-8"}},
			Body:       []byte(err.Error()),
		}
	}
	req.RequestURI = target
	if req.Host == "" {
		req.Host = "localhost"
	}
	req.RemoteAddr = opts.RemoteAddr
	if req.RemoteAddr == "" {
		req.RemoteAddr = "127.0.0.1:0"
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()
	return &InjectResponse{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       rec.Body.Bytes(),
	}
}
