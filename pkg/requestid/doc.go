// Package requestid assigns a correlation identifier to every HTTP request.
//
// The middleware reads the X-Request-ID header, keeps it when it is a short
// token of letters, digits, '-' or '_', and otherwise generates a fresh UUID.
// The identifier is echoed in the response header and stored in the request
// context where FromContext retrieves it.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// New builds a middleware with a custom generator or with incoming identifiers
// ignored entirely, which is useful for edge servers facing untrusted clients.
package requestid
