package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config holds env-tagged logger settings.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"` // Env selects environment defaults: development, staging or production.
	Service string `env:"APP_NAME" envDefault:"srvkit"`     // Service is attached to every record as "service".
	Level   string `env:"LOG_LEVEL"`                        // Level overrides the environment level: debug, info, warn or error.
	Format  string `env:"LOG_FORMAT"`                       // Format overrides the environment format: text or json.
}

// NewFromConfig builds a logger from cfg. Explicit level and format win over
// the environment defaults; opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) (*slog.Logger, error) {
	base := []Option{WithEnvironment(cfg.Env, cfg.Service)}

	if cfg.Level != "" {
		lvl, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		base = append(base, WithLevel(lvl))
	}

	if cfg.Format != "" {
		f := Format(strings.ToLower(cfg.Format))
		if f != FormatJSON && f != FormatText {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
		}
		base = append(base, WithFormat(f))
	}

	return New(append(base, opts...)...), nil
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return lvl, nil
}
