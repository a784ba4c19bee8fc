package replay

import "time"

// Config selects and configures the replay guard.
type Config struct {
	// Driver is "memory", "redis" or "none".
	Driver          string        `env:"REPLAY_DRIVER" envDefault:"memory"`
	CleanupInterval time.Duration `env:"REPLAY_CLEANUP_INTERVAL" envDefault:"10m"`
	KeyPrefix       string        `env:"REPLAY_KEY_PREFIX" envDefault:"sessionkit:replay:"`

	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns an in-memory guard configuration.
func DefaultConfig() Config {
	return Config{
		Driver:          "memory",
		CleanupInterval: 10 * time.Minute,
		KeyPrefix:       "sessionkit:replay:",
		RedisURL:        "redis://localhost:6379/0",
		RetryAttempts:   3,
		RetryInterval:   5 * time.Second,
		ConnectTimeout:  30 * time.Second,
	}
}
