package replay

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Guard records single-use values. Consume returns ErrConsumed when key was
// already consumed; the record is kept until `until`, after which the value is
// expected to be rejected for other reasons (expiry).
type Guard interface {
	Consume(ctx context.Context, key string, until time.Time) error
}

// Key hashes an encrypted blob so guards never store cookie contents.
func Key(blob string) string {
	sum := sha256.Sum256([]byte(blob))
	return hex.EncodeToString(sum[:])
}

// ttl returns how long a record must live; never less than a second.
func ttl(now, until time.Time) time.Duration {
	d := until.Sub(now)
	if d < time.Second {
		return time.Second
	}
	return d
}
