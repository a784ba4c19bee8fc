package chunk

// Config holds chunking limits.
type Config struct {
	// MaxChunkBytes caps the length of a single cookie value.
	MaxChunkBytes int `env:"COOKIE_MAX_CHUNK_BYTES" envDefault:"3500"`

	// MaxChunks caps both the number of chunk cookies written and the highest
	// index accepted on read.
	MaxChunks int `env:"COOKIE_MAX_CHUNKS" envDefault:"100"`
}

// DefaultConfig returns default chunking configuration
func DefaultConfig() Config {
	return Config{
		MaxChunkBytes: 3500,
		MaxChunks:     100,
	}
}

// NewFromConfig creates a new Assembler from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) (*Assembler, error) {
	configOpts := make([]Option, 0, 2+len(opts))
	if cfg.MaxChunkBytes != 0 {
		configOpts = append(configOpts, WithMaxChunkBytes(cfg.MaxChunkBytes))
	}
	if cfg.MaxChunks != 0 {
		configOpts = append(configOpts, WithMaxChunks(cfg.MaxChunks))
	}
	return New(append(configOpts, opts...)...)
}
