// Package httpserver provides a chi-routed net/http server whose life-cycle is
// driven through callback-style operations and observed through events.
//
// The core type is Server. Besides the classic blocking Run it exposes:
//
//   - Start, Stop, Register and Inject, each reporting completion through a
//     trailing callback. Start, Stop and Register use error-first callbacks;
//     Inject hands back the synthetic response and never fails.
//
//   - Events – OnLog, OnRequestError and OnResponse subscribe listeners to the
//     "log", "request-error" and "response" events. Listeners run
//     synchronously in the goroutine serving the request, after the handler
//     returns, so they must be safe for concurrent use and must not block.
//
//   - Plugins – Register installs Plugin values, in order, on the chi router.
//
//   - Functional Options – WithAddr, WithReadTimeout, WithLogger,
//     WithMiddleware, WithStartHook, WithStopHook and friends. NewFromConfig
//     builds a Server from an env-tagged Config.
//
// # Request pipeline
//
// Every request passes through request id assignment, then the event layer,
// then any WithMiddleware middleware, then the router. The event layer
// records the status code, recovers handler panics into a 500 response plus
// a request-error event, and emits exactly one response event per request.
// Handlers report failures explicitly with Fail.
//
// # Usage
//
//	srv := httpserver.New(httpserver.WithAddr(":8080"))
//
//	srv.Register([]httpserver.Plugin{
//		httpserver.NewPlugin("hello", func(r chi.Router) error {
//			r.Get("/hello", func(w http.ResponseWriter, _ *http.Request) {
//				w.Write([]byte("hi"))
//			})
//			return nil
//		}),
//	}, func(err error) { ... })
//
//	srv.OnResponse(func(r *httpserver.Request) { ... })
//
//	if err := srv.Run(ctx); err != nil {
//		slog.Error("server stopped", "err", err)
//	}
//
// # Errors
//
// Start and Run wrap listen errors with ErrStart, Stop wraps shutdown errors
// with ErrShutdown and Register wraps plugin failures with ErrRegister. Use
// errors.Is to distinguish them. A Stop whose timeout elapses closes the
// remaining connections and still succeeds.
package httpserver
