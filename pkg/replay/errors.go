package replay

import "errors"

var (
	// ErrConsumed means the key was already consumed and has not expired yet.
	ErrConsumed = errors.New("replay.consumed")

	ErrGuardUnavailable             = errors.New("replay.guard_unavailable")
	ErrFailedToParseRedisConnString = errors.New("replay.invalid_redis_url")
	ErrRedisNotReady                = errors.New("replay.redis_not_ready")
)
