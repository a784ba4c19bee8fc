package cookie

import "errors"

var (
	ErrInvalidName      = errors.New("cookie.invalid_name")
	ErrInsecureSameSite = errors.New("cookie.samesite_none_requires_secure")
)
