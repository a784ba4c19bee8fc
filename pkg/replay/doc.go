// Package replay records single-use values so a transaction cookie cannot be
// redeemed twice.
//
// Encrypted cookies are self-contained: once issued, the server cannot revoke
// them. A Guard closes that gap for OAuth transactions by remembering which
// blobs were already consumed until they expire on their own.
//
//	guard := replay.NewMemoryGuard(10 * time.Minute)
//	if err := guard.Consume(ctx, replay.Key(blob), expiresAt); errors.Is(err, replay.ErrConsumed) {
//	    // second use
//	}
//
// MemoryGuard is backed by github.com/patrickmn/go-cache. RedisGuard uses
// SET NX with a TTL and works across instances:
//
//	client, err := replay.Connect(ctx, cfg)
//	guard := replay.NewRedisGuard(client, cfg.KeyPrefix)
package replay
