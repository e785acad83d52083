// Package lifecycle turns the callback-style life-cycle of an httpserver.Server
// into futures.
//
// An Adapter wraps a Handle (normally *httpserver.Server) without owning it:
// the handle may be used directly alongside the adapter. Each operation returns
// an *async.Future so calls compose with Await, async.WaitAll and async.WaitAny:
//
//	a := lifecycle.New(srv)
//	if _, err := a.Register(healthcheck.Plugin(...), api).Await(); err != nil {
//	    return err
//	}
//	if _, err := a.Start().Await(); err != nil {
//	    return err
//	}
//	defer a.Stop(nil).Await()
//
// Start, Stop and Register resolve with no payload or reject with the error
// reported by the handle, untouched. A panic raised while invoking the handle
// rejects the future with an *async.PanicError; nothing is re-raised on the
// calling goroutine.
//
// Inject always resolves with the synthetic response, whatever its status
// code, because the handle reports injection through a response-only
// callback.
//
// The executor that runs the handle operations is chosen per adapter with
// WithExecutor; the default starts a goroutine per operation.
package lifecycle
