package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/srvkit/pkg/logger"
	"github.com/dmitrymomot/srvkit/pkg/requestid"
)

type stateKey struct{}

// requestState collects the failure reported for a request, if any.
type requestState struct {
	err error
}

// Fail answers the request with 500 Internal Server Error and reports err to
// request-error listeners once the handler returns.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	if st, ok := r.Context().Value(stateKey{}).(*requestState); ok && err != nil {
		st.err = err
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		if r.status == 0 {
			r.status = http.StatusOK
		}
		f.Flush()
	}
}

// observe records the outcome of every request and emits request-error and
// response events after the wrapped handler returns.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		req := &Request{
			ID:     requestid.FromContext(r.Context()),
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
		}

		st := &requestState{}
		rec := &statusRecorder{ResponseWriter: w}
		r = r.WithContext(context.WithValue(r.Context(), stateKey{}, st))

		s.dispatch(next, rec, r, st)

		if st.err != nil {
			s.events.emitRequestError(req, st.err)
		}

		status := rec.status
		switch {
		case status != 0:
		case r.Context().Err() != nil:
			// client went away before anything was written
		default:
			// net/http answers 200 for handlers that write nothing
			status = http.StatusOK
		}
		if status != 0 {
			req.Response = &Response{
				StatusCode: status,
				Bytes:      rec.bytes,
				Duration:   time.Since(start),
			}
		}

		s.events.emitResponse(req)
	})
}

func (s *Server) dispatch(next http.Handler, w *statusRecorder, r *http.Request, st *requestState) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if v == http.ErrAbortHandler {
			panic(v)
		}

		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("%v", v)
		}
		st.err = errors.Join(ErrHandlerPanic, err)
		s.cfg.logger.ErrorContext(r.Context(), "handler panic recovered",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)

		if w.status == 0 {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}()

	next.ServeHTTP(w, r)
}
