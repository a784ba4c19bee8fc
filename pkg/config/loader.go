package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Validator is implemented by configs that check their own invariants.
type Validator interface {
	Validate() error
}

var defaultEnvLoaded sync.Once

// Load parses environment variables into v using its env tags, then calls
// v.Validate when v implements Validator. The default .env file is loaded
// once per process before the first parse, if it exists.
//
//	type Config struct {
//		Secrets string `env:"SESSION_SECRETS,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// a missing .env is fine
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	if val, ok := any(v).(Validator); ok {
		if err := val.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// LoadEnv loads one or more .env files into the process environment.
// Variables that are already set are not overridden.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrReadingFile, err)
	}
	return nil
}

// LoadYAML reads a flat YAML mapping of environment variable names to values
// and exports every key that is not already set, so a following Load sees
// them. Process environment wins over the file.
//
//	SESSION_SECRETS: a-long-secret,an-older-secret
//	SESSION_ROLLING: true
//	SESSION_INACTIVITY_DURATION: 24h
func LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return errors.Join(ErrReadingFile, err)
	}

	for k, v := range values {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		var s string
		switch val := v.(type) {
		case nil:
			continue
		case []any:
			for i, item := range val {
				if i > 0 {
					s += ","
				}
				s += fmt.Sprint(item)
			}
		case map[string]any:
			return fmt.Errorf("%w: key %q must be a scalar or a list", ErrReadingFile, k)
		default:
			s = fmt.Sprint(val)
		}
		if err := os.Setenv(k, s); err != nil {
			return errors.Join(ErrReadingFile, err)
		}
	}

	return nil
}
