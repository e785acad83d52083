package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/srvkit/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestEnvironments(t *testing.T) {
	t.Run("development is text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(logger.EnvDevelopment, "svc"), logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "service=svc")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("production is json at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "svc"), logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())
		log.Info("msg")
		entry := decode(t, buf)
		assert.Equal(t, "svc", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("names are case-insensitive", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("STAGE", "svc"), logger.WithOutput(buf))
		log.Info("msg")
		assert.Equal(t, "staging", decode(t, buf)["env"])
	})

	t.Run("unknown falls back to development", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("qa", ""), logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "env=development")
		assert.NotContains(t, buf.String(), "service=")
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log, err := logger.NewFromConfig(
			logger.Config{Env: "production", Service: "svc", Level: "warn", Format: "TEXT"},
			logger.WithOutput(buf),
		)
		require.NoError(t, err)
		log.Info("hidden")
		log.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := logger.NewFromConfig(logger.Config{Level: "loud"})
		assert.ErrorIs(t, err, logger.ErrInvalidLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := logger.NewFromConfig(logger.Config{Format: "xml"})
		assert.ErrorIs(t, err, logger.ErrInvalidFormat)
	})
}

func TestParseLevel(t *testing.T) {
	lvl, err := logger.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = logger.ParseLevel("ERROR")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, lvl)
}

func TestContextExtractors(t *testing.T) {
	type key string
	k := key("id")

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("id", k),
		logger.WithContextExtractors(nil),
	)
	log.InfoContext(context.WithValue(context.Background(), k, "123"), "msg")
	assert.Equal(t, "123", decode(t, buf)["id"])
}

func TestValueExtractor(t *testing.T) {
	type key string
	ex := logger.ValueExtractor("tenant", key("tenant"))

	_, ok := ex(context.Background())
	assert.False(t, ok)

	attr, ok := ex(context.WithValue(context.Background(), key("tenant"), "acme"))
	require.True(t, ok)
	assert.Equal(t, "tenant", attr.Key)
	assert.Equal(t, "acme", attr.Value.String())
}

func TestExtractorsSurviveWith(t *testing.T) {
	type key string
	k := key("id")

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextValue("id", k)).With("child", true)
	log.InfoContext(context.WithValue(context.Background(), k, "abc"), "msg")

	entry := decode(t, buf)
	assert.Equal(t, "abc", entry["id"])
	assert.Equal(t, true, entry["child"])
}

func TestWithAttrAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithAttr(logger.Component("test")))
	log.Info("msg", logger.Group("req", logger.Method("GET"), logger.Path("/x")))

	entry := decode(t, buf)
	assert.Equal(t, "test", entry["component"])
	req, ok := entry["req"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GET", req["method"])
	assert.Equal(t, "/x", req["path"])
}

func TestAttrs(t *testing.T) {
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))

	err := errors.New("boom")
	assert.Equal(t, "error", logger.Error(err).Key)

	errs := logger.Errors(err, nil, err)
	require.Equal(t, slog.KindGroup, errs.Value.Kind())
	assert.Len(t, errs.Value.Group(), 2)

	assert.Equal(t, "rid", logger.RequestID("rid").Value.String())
	assert.Equal(t, ":80", logger.Addr(":80").Value.String())
	assert.Equal(t, "p", logger.Plugin("p").Value.String())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.Equal(t, "response", logger.Event("response").Value.String())
}

func TestWithFormatPanics(t *testing.T) {
	assert.PanicsWithError(t, `invalid log format: "xml"`, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}
