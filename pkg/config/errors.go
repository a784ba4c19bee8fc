package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("config.parse_failed")

	// ErrInvalidConfig is returned when a parsed config fails its Validate method
	ErrInvalidConfig = errors.New("config.invalid")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrReadingFile is returned when an env or YAML file cannot be read or decoded
	ErrReadingFile = errors.New("config.read_failed")
)
