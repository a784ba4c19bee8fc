package cookie

import (
	"fmt"
	"net/http"
	"time"
)

// Jar is a read-only view of the cookies sent with a request, keyed by name.
type Jar map[string]string

// FromRequest builds a Jar from the request's Cookie headers.
// When a name appears more than once the first value wins, matching r.Cookie.
func FromRequest(r *http.Request) Jar {
	if r == nil {
		return Jar{}
	}
	return fromCookies(r.Cookies())
}

// FromHeader builds a Jar from a raw Cookie header value.
// Malformed pairs are skipped.
func FromHeader(header string) Jar {
	r := &http.Request{Header: http.Header{"Cookie": {header}}}
	return fromCookies(r.Cookies())
}

func fromCookies(cookies []*http.Cookie) Jar {
	jar := make(Jar, len(cookies))
	for _, c := range cookies {
		if _, exists := jar[c.Name]; !exists {
			jar[c.Name] = c.Value
		}
	}
	return jar
}

// Get returns the value of the named cookie.
func (j Jar) Get(name string) (string, bool) {
	v, ok := j[name]
	return v, ok
}

// Apply returns a copy of the jar with the write instructions applied the way
// a browser would: deletions remove the cookie, everything else overwrites it.
func (j Jar) Apply(cookies ...Cookie) Jar {
	next := make(Jar, len(j)+len(cookies))
	for k, v := range j {
		next[k] = v
	}
	for _, c := range cookies {
		if c.IsDeletion() {
			delete(next, c.Name)
			continue
		}
		next[c.Name] = c.Value
	}
	return next
}

// Cookie is a write instruction: a name, a value and the attributes the caller
// must send back in a Set-Cookie header.
type Cookie struct {
	Name    string
	Value   string
	Options Options
}

// IsDeletion reports whether the instruction clears the cookie.
func (c Cookie) IsDeletion() bool {
	return c.Options.MaxAge < 0
}

// HTTP converts the instruction into an *http.Cookie.
func (c Cookie) HTTP() *http.Cookie {
	hc := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Options.Path,
		Domain:   c.Options.Domain,
		MaxAge:   c.Options.MaxAge,
		Secure:   c.Options.Secure,
		HttpOnly: c.Options.HttpOnly,
		SameSite: c.Options.SameSite,
	}
	if c.IsDeletion() {
		hc.Expires = time.Unix(0, 0)
	}
	return hc
}

// Write adds one Set-Cookie header per instruction.
func Write(w http.ResponseWriter, cookies ...Cookie) {
	for _, c := range cookies {
		http.SetCookie(w, c.HTTP())
	}
}

// Manager builds write instructions from a set of default attributes.
type Manager struct {
	defaults Options
}

// New creates a Manager. Defaults are Path=/, HttpOnly and SameSite=Lax.
func New(opts ...Option) (*Manager, error) {
	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	if defaults.SameSite == http.SameSiteNoneMode && !defaults.Secure {
		return nil, ErrInsecureSameSite
	}

	return &Manager{defaults: defaults}, nil
}

// Defaults returns a copy of the default attributes.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Set returns an instruction writing value under name.
func (m *Manager) Set(name, value string, opts ...Option) Cookie {
	return Cookie{
		Name:    name,
		Value:   value,
		Options: applyOptions(m.defaults, opts),
	}
}

// Delete returns an instruction clearing name. Path and Domain must match the
// ones used on write or browsers keep the cookie.
func (m *Manager) Delete(name string) Cookie {
	opts := m.defaults
	opts.MaxAge = -1
	return Cookie{Name: name, Options: opts}
}

// Validate checks name and value against RFC 6265 the way net/http does.
func Validate(c Cookie) error {
	if err := c.HTTP().Valid(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	return nil
}
