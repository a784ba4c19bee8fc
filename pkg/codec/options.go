package codec

import "time"

type Option func(*Codec)

// WithClock replaces time.Now for expiry checks and iat claims.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}
