package replay

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryGuard keeps consumed keys in process memory. Suitable for a single
// instance; use RedisGuard when several instances serve the same users.
type MemoryGuard struct {
	cache *cache.Cache
	now   func() time.Time
}

// NewMemoryGuard creates a MemoryGuard that purges expired records every
// cleanupInterval. Zero disables the janitor.
func NewMemoryGuard(cleanupInterval time.Duration) *MemoryGuard {
	return &MemoryGuard{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
		now:   time.Now,
	}
}

// Consume implements Guard.
func (g *MemoryGuard) Consume(ctx context.Context, key string, until time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.cache.Add(key, struct{}{}, ttl(g.now(), until)); err != nil {
		return ErrConsumed
	}
	return nil
}

// Len returns the number of records, expired ones included until the next purge.
func (g *MemoryGuard) Len() int {
	return g.cache.ItemCount()
}
