// Package config loads typed configuration from the environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv exports variables from .env files.
//   - LoadYAML exports variables from a flat YAML file (gopkg.in/yaml.v3).
//   - Load parses the environment into any struct using env tags and runs its
//     Validate method when present.
//
// Every sessionkit package exposes a Config struct with env tags, so a binary
// can compose them:
//
//	type Config struct {
//	    Codec   codec.Config
//	    Session session.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Precedence
//
// Process environment, then variables from files in the order they were
// loaded, then envDefault tags. Neither LoadEnv nor LoadYAML overrides a
// variable that is already set.
//
// # Errors
//
//   - ErrParsingConfig: env vars do not fit the struct or a required one is missing.
//   - ErrInvalidConfig: Validate rejected the parsed values.
//   - ErrReadingFile: an env or YAML file cannot be read or decoded.
//   - ErrNilPointer: nil pointer passed to Load.
package config
