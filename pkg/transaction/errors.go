package transaction

import "errors"

var (
	// ErrInvalidTransaction wraps every failure of Get and Set; join partners
	// carry the cause (chunk.ErrNotFound, codec.ErrExpired, ...).
	ErrInvalidTransaction = errors.New("transaction.invalid")

	// ErrStateMismatch means the cookie decrypted fine but was issued for a different state.
	ErrStateMismatch = errors.New("transaction.state_mismatch")

	// ErrMissingState means Set was called without a state.
	ErrMissingState = errors.New("transaction.missing_state")

	// ErrInvalidState means the state cannot be used in a cookie name, or
	// contains the chunk separator "__".
	ErrInvalidState = errors.New("transaction.invalid_state")
)
