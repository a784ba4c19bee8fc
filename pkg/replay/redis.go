package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGuard keeps consumed keys in Redis with SET NX, so every instance
// sharing the server sees the same records.
type RedisGuard struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisGuard wraps an existing client.
func NewRedisGuard(client redis.UniversalClient, prefix string) *RedisGuard {
	return &RedisGuard{client: client, prefix: prefix, now: time.Now}
}

// Consume implements Guard.
func (g *RedisGuard) Consume(ctx context.Context, key string, until time.Time) error {
	ok, err := g.client.SetNX(ctx, g.prefix+key, 1, ttl(g.now(), until)).Result()
	if err != nil {
		return errors.Join(ErrGuardUnavailable, err)
	}
	if !ok {
		return ErrConsumed
	}
	return nil
}

// Healthcheck pings the server.
func (g *RedisGuard) Healthcheck(ctx context.Context) error {
	if err := g.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrGuardUnavailable, err)
	}
	return nil
}

// Connect establishes a connection to Redis, retrying up to RetryAttempts
// times with RetryInterval between attempts.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// NewFromConfig builds the guard named by cfg.Driver. It returns a nil Guard
// for "none". The returned closer releases any connection.
func NewFromConfig(ctx context.Context, cfg Config) (Guard, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryGuard(cfg.CleanupInterval), noop, nil
	case "none":
		return nil, noop, nil
	case "redis":
		client, err := Connect(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisGuard(client, cfg.KeyPrefix), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: unknown driver %q", ErrGuardUnavailable, cfg.Driver)
	}
}
