// Package config loads env-tagged structs from the process environment and
// optional .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//	type ServerConfig struct {
//	    Addr string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    Stop time.Duration `env:"HTTP_STOP_TIMEOUT" envDefault:"500ms"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Without explicit files Load reads ./.env when it exists. Named files must
// exist. Variables already present in the environment are never overridden by
// file values.
//
// Parse failures are joined with ErrParsingConfig; unreadable env files with
// ErrEnvFile.
package config
