package chunk

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Separator joins a base cookie name and a chunk index.
const Separator = "__"

const (
	// maxIndexDigits bounds suffix parsing; longer numeric suffixes are treated
	// as out of range without converting them.
	maxIndexDigits = 9
)

// Chunk is one named slice of a blob.
type Chunk struct {
	Name  string
	Value string
}

// Assembler splits blobs into cookie sized chunks and reassembles them. It knows
// nothing about what the blob contains.
type Assembler struct {
	maxChunkBytes int
	maxChunks     int
	cookies       *cookie.Manager
}

// New creates an Assembler with MaxChunkBytes=3500 and MaxChunks=100 unless
// overridden.
func New(opts ...Option) (*Assembler, error) {
	a := &Assembler{
		maxChunkBytes: DefaultConfig().MaxChunkBytes,
		maxChunks:     DefaultConfig().MaxChunks,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.maxChunkBytes <= 0 || a.maxChunks <= 0 {
		return nil, fmt.Errorf("%w: max chunk bytes %d, max chunks %d", ErrInvalidConfig, a.maxChunkBytes, a.maxChunks)
	}

	if a.cookies == nil {
		m, err := cookie.New()
		if err != nil {
			return nil, err
		}
		a.cookies = m
	}

	return a, nil
}

// MaxChunks returns the configured chunk limit.
func (a *Assembler) MaxChunks() int {
	return a.maxChunks
}

// Name returns the cookie name of chunk i.
func Name(base string, i int) string {
	return base + Separator + strconv.Itoa(i)
}

// Split cuts blob into the fewest chunks whose values fit MaxChunkBytes.
// A blob that fits in one cookie is returned unchunked under base.
func (a *Assembler) Split(base, blob string) ([]Chunk, error) {
	if len(blob) <= a.maxChunkBytes {
		return []Chunk{{Name: base, Value: blob}}, nil
	}

	n := (len(blob) + a.maxChunkBytes - 1) / a.maxChunkBytes
	if n > a.maxChunks {
		return nil, fmt.Errorf("%w: %d bytes need %d chunks, limit is %d", ErrTooLarge, len(blob), n, a.maxChunks)
	}

	chunks := make([]Chunk, 0, n)
	for i := range n {
		start := i * a.maxChunkBytes
		end := min(start+a.maxChunkBytes, len(blob))
		chunks = append(chunks, Chunk{Name: Name(base, i), Value: blob[start:end]})
	}

	return chunks, nil
}

// Plan returns the instructions that store blob under base: one write per chunk
// followed by deletions of the cookies in jar that would otherwise shadow or
// corrupt the new value on the next read. Out of range chunk names are
// cleared at most MaxChunks per call.
func (a *Assembler) Plan(jar cookie.Jar, base, blob string, opts ...cookie.Option) ([]cookie.Cookie, error) {
	chunks, err := a.Split(base, blob)
	if err != nil {
		return nil, err
	}

	out := make([]cookie.Cookie, 0, len(chunks)+1)
	for _, c := range chunks {
		out = append(out, a.cookies.Set(c.Name, c.Value, opts...))
	}

	chunked := len(chunks) > 1 || chunks[0].Name != base
	if chunked {
		if _, ok := jar.Get(base); ok {
			out = append(out, a.remove(base, opts))
		}
	}

	for _, c := range a.chunkCookies(jar, base) {
		if chunked && c.index < len(chunks) {
			continue
		}
		out = append(out, a.remove(c.name, opts))
	}

	return out, nil
}

// Assemble returns the blob stored under base.
//
// An unchunked base cookie wins. Otherwise the jar is scanned once to index
// every base__<n> cookie, so the cost is linear in the number of cookies sent no
// matter how many chunk shaped names an adversary adds. Any index at or above
// MaxChunks, or any gap in 0..n-1, yields ErrMalformedChunks; no partial
// reconstruction is ever returned.
func (a *Assembler) Assemble(jar cookie.Jar, base string) (string, error) {
	if v, ok := jar.Get(base); ok {
		return v, nil
	}

	prefix := base + Separator
	index := make(map[int]string)
	total := 0

	for name, value := range jar {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		i, ok := parseIndex(name[len(prefix):])
		if !ok {
			continue
		}
		if i >= a.maxChunks {
			return "", fmt.Errorf("%w: chunk index %s exceeds limit %d", ErrMalformedChunks, name[len(prefix):], a.maxChunks)
		}
		index[i] = value
		total += len(value)
	}

	if len(index) == 0 {
		return "", ErrNotFound
	}

	var b strings.Builder
	b.Grow(total)
	for i := range len(index) {
		v, ok := index[i]
		if !ok {
			return "", fmt.Errorf("%w: chunk %d of %d missing", ErrMalformedChunks, i, len(index))
		}
		b.WriteString(v)
	}

	return b.String(), nil
}

// Clear returns deletions for base and the chunk cookies present in jar. At
// most MaxChunks out of range names are cleared per call.
func (a *Assembler) Clear(jar cookie.Jar, base string, opts ...cookie.Option) []cookie.Cookie {
	var out []cookie.Cookie
	if _, ok := jar.Get(base); ok {
		out = append(out, a.remove(base, opts))
	}
	for _, c := range a.chunkCookies(jar, base) {
		out = append(out, a.remove(c.name, opts))
	}
	return out
}

func (a *Assembler) remove(name string, opts []cookie.Option) cookie.Cookie {
	c := a.cookies.Set(name, "", opts...)
	c.Options.MaxAge = -1
	return c
}

type indexed struct {
	name  string
	index int
}

// chunkCookies returns the base__<n> cookies in jar ordered by index: every
// index below MaxChunks, then at most MaxChunks out of range names.
func (a *Assembler) chunkCookies(jar cookie.Jar, base string) []indexed {
	prefix := base + Separator
	var in, out []indexed
	for name := range jar {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		i, ok := parseIndex(name[len(prefix):])
		switch {
		case !ok:
		case i < a.maxChunks:
			in = append(in, indexed{name: name, index: i})
		case len(out) < a.maxChunks:
			out = append(out, indexed{name: name, index: i})
		}
	}
	slices.SortFunc(in, compareIndexed)
	slices.SortFunc(out, compareIndexed)
	return append(in, out...)
}

func compareIndexed(a, b indexed) int {
	if c := cmp.Compare(a.index, b.index); c != 0 {
		return c
	}
	return strings.Compare(a.name, b.name)
}

// parseIndex accepts only canonical decimal indexes: digits, no sign, no
// leading zeros. Suffixes longer than maxIndexDigits parse as out of range.
func parseIndex(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	if len(s) > maxIndexDigits {
		return int(^uint(0) >> 1), true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
