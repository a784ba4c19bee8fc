package session

import "errors"

var (
	// ErrNoSession wraps every Get failure; join partners carry the cause
	// (chunk.ErrNotFound, codec.ErrExpired, codec.ErrKindMismatch, ...).
	ErrNoSession = errors.New("session.no_session")

	// ErrInvalidSession wraps Set failures.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrMissingConnection indicates a connection token set without a connection name
	ErrMissingConnection = errors.New("session.missing_connection")

	// ErrTooManyConnections indicates every connection cookie slot is taken
	ErrTooManyConnections = errors.New("session.too_many_connections")
)
