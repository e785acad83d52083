package lifecycle

import "time"

// Config holds env-tagged adapter settings.
type Config struct {
	StopTimeout time.Duration `env:"HTTP_STOP_TIMEOUT" envDefault:"500ms"` // StopTimeout is the graceful shutdown budget used by Stop when none is given.
	PoolSize    int           `env:"LIFECYCLE_POOL_SIZE" envDefault:"0"`   // PoolSize bounds concurrent life-cycle operations; 0 starts a goroutine per operation.
}
