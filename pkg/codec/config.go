package codec

import "strings"

// Config holds codec configuration.
type Config struct {
	// Secrets is a comma separated list; the first one seals, all of them open.
	Secrets string `env:"SESSION_SECRETS,required"`
}

// parseSecrets splits the secrets string into a slice
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	return secrets
}

// NewFromConfig creates a new Codec from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) (*Codec, error) {
	return New(cfg.parseSecrets(), opts...)
}
