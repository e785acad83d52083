package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/srvkit/pkg/config"
)

type serverConfig struct {
	Addr        string        `env:"CFGTEST_ADDR" envDefault:":8080"`
	StopTimeout time.Duration `env:"CFGTEST_STOP_TIMEOUT" envDefault:"500ms"`
	PoolSize    int           `env:"CFGTEST_POOL_SIZE"`
}

type requiredConfig struct {
	Value string `env:"CFGTEST_REQUIRED,required"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.StopTimeout)
	assert.Zero(t, cfg.PoolSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CFGTEST_ADDR", "127.0.0.1:9000")
	t.Setenv("CFGTEST_STOP_TIMEOUT", "2s")
	t.Setenv("CFGTEST_POOL_SIZE", "8")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 2*time.Second, cfg.StopTimeout)
	assert.Equal(t, 8, cfg.PoolSize)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFGTEST_FILE_ONLY=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CFGTEST_FILE_ONLY") })

	var cfg struct {
		Value string `env:"CFGTEST_FILE_ONLY"`
	}
	require.NoError(t, config.Load(&cfg, path))
	assert.Equal(t, "from-file", cfg.Value)
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFGTEST_PRIORITY=file\n"), 0o600))
	t.Setenv("CFGTEST_PRIORITY", "process")

	var cfg struct {
		Value string `env:"CFGTEST_PRIORITY"`
	}
	require.NoError(t, config.Load(&cfg, path))
	assert.Equal(t, "process", cfg.Value)
}

func TestLoadMissingNamedFile(t *testing.T) {
	var cfg serverConfig
	err := config.Load(&cfg, filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrEnvFile)
}

func TestLoadRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("CFGTEST_REQUIRED", "set")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "set", cfg.Value)
}

func TestLoadWithPrefix(t *testing.T) {
	t.Setenv("APP_CFGTEST_ADDR", ":7000")

	var cfg serverConfig
	require.NoError(t, config.LoadWithPrefix(&cfg, "APP_"))
	assert.Equal(t, ":7000", cfg.Addr)
}

func TestLoadNilPointer(t *testing.T) {
	var cfg *serverConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
