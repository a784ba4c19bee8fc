package transaction

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/replay"
)

// Option is a functional option for configuring the Store
type Option func(*Store)

// WithCookiePrefix sets the cookie name prefix (default "__txn_").
func WithCookiePrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets the default transaction lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

func WithParallelTransactions(enabled bool) Option {
	return func(s *Store) {
		s.parallel = enabled
	}
}

// WithCookieOptions adds attributes to every cookie the store writes or clears.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(s *Store) {
		s.cookieOpts = append(s.cookieOpts, opts...)
	}
}

// WithReplayGuard makes Get reject a transaction cookie that was already
// redeemed, even if the browser sends it again.
func WithReplayGuard(g replay.Guard) Option {
	return func(s *Store) {
		s.guard = g
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
