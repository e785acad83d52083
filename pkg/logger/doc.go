// Package logger builds *slog.Logger values for the server and its
// components.
//
// New takes functional options: WithEnvironment picks level and format for
// development, staging or production and tags records with env and service;
// WithLevel, WithFormat and WithOutput override single settings; WithAttr adds
// static attributes. NewFromConfig does the same from an env-tagged Config
// (APP_ENV, APP_NAME, LOG_LEVEL, LOG_FORMAT) and reports bad names as
// ErrInvalidLevel or ErrInvalidFormat.
//
// Request-scoped values are attached with context extractors. They run on
// every record logged through a *Context method:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "edge-api"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "http server started", logger.Addr(":8080"))
//
// The attribute helpers (Error, Errors, RequestID, Addr, Method, Path,
// Duration, Component, Event, Plugin) keep key names consistent. Error and
// Errors return an empty attribute for nil errors, so
//
//	log.Info("operation finished", logger.Error(err))
//
// needs no nil check.
package logger
