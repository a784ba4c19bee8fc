package transaction

import (
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/chunk"
	"github.com/dmitrymomot/sessionkit/pkg/codec"
)

// Config holds transaction store configuration.
type Config struct {
	// CookiePrefix is prepended to the state to name the cookie.
	CookiePrefix string `env:"TRANSACTION_COOKIE_PREFIX" envDefault:"__txn_"`

	// TTL is used when Set is called with a non-positive ttl.
	TTL time.Duration `env:"TRANSACTION_TTL" envDefault:"1h"`

	// ParallelTransactions gives each login attempt its own cookie. When false
	// a new attempt replaces the previous one.
	ParallelTransactions bool `env:"TRANSACTION_PARALLEL" envDefault:"true"`
}

// DefaultConfig returns default transaction configuration
func DefaultConfig() Config {
	return Config{
		CookiePrefix:         "__txn_",
		TTL:                  time.Hour,
		ParallelTransactions: true,
	}
}

// NewFromConfig creates a new Store from the provided Config.
func NewFromConfig(cfg Config, c *codec.Codec, a *chunk.Assembler, opts ...Option) (*Store, error) {
	configOpts := []Option{
		WithParallelTransactions(cfg.ParallelTransactions),
	}
	if cfg.CookiePrefix != "" {
		configOpts = append(configOpts, WithCookiePrefix(cfg.CookiePrefix))
	}
	if cfg.TTL > 0 {
		configOpts = append(configOpts, WithTTL(cfg.TTL))
	}
	return New(c, a, append(configOpts, opts...)...)
}
