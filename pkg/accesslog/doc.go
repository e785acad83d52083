// Package accesslog renders one line per server event and hands it to a Sink.
//
// Bind subscribes to the log, request-error and response events of an
// httpserver.Server (or anything implementing Subscriber):
//
//   - log events send their data to Sink.Info;
//   - request-error events send the request line followed by the error text
//     to Sink.Error;
//   - response events with no response or a status of 400 and above send the
//     request line to Sink.Error; successful ones send it to Sink.Info.
//
// The request line reads
//
//	< GET /test?hii=hoo 200
//
// with the query re-encoded from the parsed values and then unescaped for
// readability, and "---" in place of the status while no response exists.
//
// # Formatters
//
// Formatters maps exact request paths to functions overriding the line for
// successful responses. A formatter returns Text to log its own line,
// Suppress to log nothing, or the zero Line to fall back to the request line:
//
//	accesslog.Bind(srv, accesslog.SlogSink(log), accesslog.Formatters{
//	    "/healthz": func(*httpserver.Request) accesslog.Line { return accesslog.Suppress() },
//	    "/login": func(r *httpserver.Request) accesslog.Line {
//	        return accesslog.Text("login " + r.ID)
//	    },
//	})
//
// Handlers never panic into the server: a failure while rendering or
// dispatching is reported to Sink.Error as a diagnostic line instead.
package accesslog
