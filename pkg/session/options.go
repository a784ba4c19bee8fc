package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Option is a functional option for configuring the Store
type Option func(*Store)

// WithConfig sets custom configuration. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(s *Store) {
		if cfg.CookieName != "" {
			s.config.CookieName = cfg.CookieName
		}
		if cfg.AbsoluteDuration > 0 {
			s.config.AbsoluteDuration = cfg.AbsoluteDuration
		}
		if cfg.InactivityDuration >= 0 {
			s.config.InactivityDuration = cfg.InactivityDuration
		}
		if cfg.ConnectionCookiePrefix != "" {
			s.config.ConnectionCookiePrefix = cfg.ConnectionCookiePrefix
		}
		if cfg.MaxConnections > 0 {
			s.config.MaxConnections = cfg.MaxConnections
		}
		s.config.Rolling = cfg.Rolling
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(s *Store) {
		s.config.CookieName = name
	}
}

// WithDurations sets the absolute and inactivity lifetimes
func WithDurations(absolute, inactivity time.Duration) Option {
	return func(s *Store) {
		s.config.AbsoluteDuration = absolute
		s.config.InactivityDuration = inactivity
	}
}

func WithRolling(enabled bool) Option {
	return func(s *Store) {
		s.config.Rolling = enabled
	}
}

// WithMaxConnections sets how many connection token sets a session can hold
func WithMaxConnections(n int) Option {
	return func(s *Store) {
		s.config.MaxConnections = n
	}
}

// WithCookieOptions adds attributes to every cookie the store writes or clears
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(s *Store) {
		s.cookieOpts = append(s.cookieOpts, opts...)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
