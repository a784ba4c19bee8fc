package codec

import "errors"

var (
	ErrNoSecret       = errors.New("codec.no_secret")
	ErrSecretTooShort = errors.New("codec.secret_too_short")
	ErrUnknownKind    = errors.New("codec.unknown_kind")
	ErrEncryption     = errors.New("codec.encryption_failed")

	// ErrAuthentication means the blob was tampered with, truncated, not a JWE
	// at all, or sealed under a key this codec does not hold.
	ErrAuthentication = errors.New("codec.authentication_failed")

	// ErrExpired means the blob authenticated but its exp claim is not in the future.
	ErrExpired = errors.New("codec.expired")

	// ErrKindMismatch means the blob authenticated but was sealed for another payload kind.
	ErrKindMismatch = errors.New("codec.kind_mismatch")

	// ErrMalformedPayload means the body could not be decoded into the requested type.
	ErrMalformedPayload = errors.New("codec.malformed_payload")
)
