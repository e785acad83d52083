package accesslog

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/srvkit/pkg/logger"
)

type slogSink struct {
	log *slog.Logger
}

// SlogSink adapts a slog.Logger into a Sink. Lines are logged as messages
// tagged with component=accesslog.
func SlogSink(log *slog.Logger) Sink {
	if log == nil {
		return nil
	}
	return slogSink{log: log.With(logger.Component("accesslog"))}
}

func (s slogSink) Info(msg string) {
	s.log.InfoContext(context.Background(), msg)
}

func (s slogSink) Error(msg string) {
	s.log.ErrorContext(context.Background(), msg)
}
