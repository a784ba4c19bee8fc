package chunk

import "github.com/dmitrymomot/sessionkit/pkg/cookie"

// Option configures an Assembler.
type Option func(*Assembler)

// WithMaxChunkBytes sets the largest value written to a single cookie.
func WithMaxChunkBytes(n int) Option {
	return func(a *Assembler) {
		a.maxChunkBytes = n
	}
}

// WithMaxChunks sets the chunk count limit for writes and reads.
func WithMaxChunks(n int) Option {
	return func(a *Assembler) {
		a.maxChunks = n
	}
}

// WithCookieManager sets the manager used to build write and delete instructions.
func WithCookieManager(m *cookie.Manager) Option {
	return func(a *Assembler) {
		if m != nil {
			a.cookies = m
		}
	}
}
