package session

import (
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/chunk"
	"github.com/dmitrymomot/sessionkit/pkg/codec"
)

// Config holds session configuration
type Config struct {
	// CookieName is the base name of the session cookie (default: "appSession")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"appSession"`

	// AbsoluteDuration caps the lifetime of a session from its creation. Never extended.
	AbsoluteDuration time.Duration `env:"SESSION_ABSOLUTE_DURATION" envDefault:"72h"`

	// InactivityDuration expires a session that was not read for this long.
	// Zero disables it.
	InactivityDuration time.Duration `env:"SESSION_INACTIVITY_DURATION" envDefault:"24h"`

	// Rolling slides the inactivity expiry on every successful Get.
	Rolling bool `env:"SESSION_ROLLING" envDefault:"true"`

	ConnectionCookiePrefix string `env:"SESSION_CONNECTION_COOKIE_PREFIX" envDefault:"__FC_"`
	MaxConnections         int    `env:"SESSION_MAX_CONNECTIONS" envDefault:"10"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:             "appSession",
		AbsoluteDuration:       72 * time.Hour,
		InactivityDuration:     24 * time.Hour,
		Rolling:                true,
		ConnectionCookiePrefix: "__FC_",
		MaxConnections:         10,
	}
}

// NewFromConfig creates a new Store from the provided Config.
func NewFromConfig(cfg Config, c *codec.Codec, a *chunk.Assembler, opts ...Option) (*Store, error) {
	configOpts := []Option{
		WithConfig(cfg),
	}

	return New(c, a, append(configOpts, opts...)...)
}
