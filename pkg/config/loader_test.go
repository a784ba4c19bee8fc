package config_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/config"
)

type defaultsConfig struct {
	TestString string `env:"TEST_STRING_DEFAULT" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_DEFAULT" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_DEFAULT" envDefault:"true"`
}

type successConfig struct {
	TestString string        `env:"TEST_STRING_SUCCESS" envDefault:"default_value"`
	TestInt    int           `env:"TEST_INT_SUCCESS" envDefault:"42"`
	TestTTL    time.Duration `env:"TEST_TTL_SUCCESS" envDefault:"1h"`
}

type requiredConfig struct {
	Required string `env:"REQUIRED_VALUE,required"`
}

type validatedConfig struct {
	Min int `env:"TEST_VALIDATED_MIN" envDefault:"1"`
}

func (c *validatedConfig) Validate() error {
	if c.Min < 1 {
		return errors.New("min must be positive")
	}
	return nil
}

type nestedConfig struct {
	Inner successConfig
	Other defaultsConfig
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_STRING_SUCCESS", "test_value")
	t.Setenv("TEST_INT_SUCCESS", "100")
	t.Setenv("TEST_TTL_SUCCESS", "5m")

	var cfg successConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "test_value", cfg.TestString)
	assert.Equal(t, 100, cfg.TestInt)
	assert.Equal(t, 5*time.Minute, cfg.TestTTL)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_STRING_DEFAULT")
	os.Unsetenv("TEST_INT_DEFAULT")
	os.Unsetenv("TEST_BOOL_DEFAULT")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "default_value", cfg.TestString)
	assert.Equal(t, 42, cfg.TestInt)
	assert.True(t, cfg.TestBool)
}

func TestLoad_Nested(t *testing.T) {
	t.Setenv("TEST_INT_SUCCESS", "3")

	var cfg nestedConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 3, cfg.Inner.TestInt)
	assert.Equal(t, 42, cfg.Other.TestInt)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_INT_SUCCESS", "not_a_number")

	var cfg successConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
}

func TestLoad_Validate(t *testing.T) {
	t.Setenv("TEST_VALIDATED_MIN", "0")

	var cfg validatedConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrInvalidConfig)

	t.Setenv("TEST_VALIDATED_MIN", "2")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 2, cfg.Min)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *successConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("TEST_SHARED", "process")
	os.Unsetenv("TEST_FROM_DOTENV")
	t.Cleanup(func() { os.Unsetenv("TEST_FROM_DOTENV") })

	require.NoError(t, config.LoadEnv("testdata/.env.test"))
	assert.Equal(t, "dotenv_value", os.Getenv("TEST_FROM_DOTENV"))
	assert.Equal(t, "process", os.Getenv("TEST_SHARED"), "existing variables win")

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrReadingFile)
}

func TestLoadYAML(t *testing.T) {
	keys := []string{"TEST_YAML_STRING", "TEST_YAML_INT", "TEST_YAML_DURATION", "TEST_YAML_LIST"}
	for _, k := range keys {
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})
	t.Setenv("TEST_YAML_PRESET", "from_env")

	require.NoError(t, config.LoadYAML("testdata/config.yaml"))

	var cfg struct {
		String   string        `env:"TEST_YAML_STRING"`
		Int      int           `env:"TEST_YAML_INT"`
		Duration time.Duration `env:"TEST_YAML_DURATION"`
		List     []string      `env:"TEST_YAML_LIST"`
		Preset   string        `env:"TEST_YAML_PRESET"`
	}
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "yaml_value", cfg.String)
	assert.Equal(t, 7, cfg.Int)
	assert.Equal(t, 90*time.Second, cfg.Duration)
	assert.Equal(t, []string{"one", "two"}, cfg.List)
	assert.Equal(t, "from_env", cfg.Preset)

	assert.ErrorIs(t, config.LoadYAML("testdata/nested.yaml"), config.ErrReadingFile)
	assert.ErrorIs(t, config.LoadYAML("testdata/missing.yaml"), config.ErrReadingFile)
}
