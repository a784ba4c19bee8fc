package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		opts    []cookie.Option
		wantErr error
	}{
		{
			name:    "defaults",
			opts:    nil,
			wantErr: nil,
		},
		{
			name:    "samesite none without secure",
			opts:    []cookie.Option{cookie.WithSameSite(http.SameSiteNoneMode)},
			wantErr: cookie.ErrInsecureSameSite,
		},
		{
			name:    "samesite none with secure",
			opts:    []cookie.Option{cookie.WithSameSite(http.SameSiteNoneMode), cookie.WithSecure(true)},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManager_Set(t *testing.T) {
	t.Parallel()
	m, err := cookie.New()
	require.NoError(t, err)

	c := m.Set("appSession", "value", cookie.WithMaxAge(60))
	assert.Equal(t, "appSession", c.Name)
	assert.Equal(t, "value", c.Value)
	assert.Equal(t, "/", c.Options.Path)
	assert.Equal(t, 60, c.Options.MaxAge)
	assert.True(t, c.Options.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.Options.SameSite)
	assert.False(t, c.IsDeletion())

	// per-call options never leak into the defaults
	assert.Equal(t, 0, m.Defaults().MaxAge)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	m, err := cookie.New(cookie.WithDomain("example.com"), cookie.WithSecure(true))
	require.NoError(t, err)

	c := m.Delete("appSession")
	assert.True(t, c.IsDeletion())
	assert.Empty(t, c.Value)
	assert.Equal(t, "example.com", c.Options.Domain)

	w := httptest.NewRecorder()
	cookie.Write(w, c)

	res := w.Result()
	defer res.Body.Close()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
}

func TestWrite(t *testing.T) {
	t.Parallel()
	m, err := cookie.New(cookie.WithSecure(true))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	cookie.Write(w,
		m.Set("a", "1"),
		m.Set("b", "2", cookie.WithHTTPOnly(false)),
	)

	headers := w.Header().Values("Set-Cookie")
	require.Len(t, headers, 2)
	assert.Contains(t, headers[0], "a=1")
	assert.Contains(t, headers[0], "HttpOnly")
	assert.Contains(t, headers[0], "Secure")
	assert.Contains(t, headers[0], "SameSite=Lax")
	assert.Contains(t, headers[1], "b=2")
	assert.NotContains(t, headers[1], "HttpOnly")
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("first value wins", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Cookie", "a=1; b=2; a=3")

		jar := cookie.FromRequest(r)
		v, ok := jar.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "1", v)
		assert.Len(t, jar, 2)
	})

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, cookie.FromRequest(nil))
	})

	t.Run("from header", func(t *testing.T) {
		t.Parallel()
		jar := cookie.FromHeader("appSession__0=x; appSession__1=y")
		assert.Equal(t, cookie.Jar{"appSession__0": "x", "appSession__1": "y"}, jar)
	})
}

func TestJar_Apply(t *testing.T) {
	t.Parallel()
	m, err := cookie.New()
	require.NoError(t, err)

	jar := cookie.Jar{"keep": "1", "drop": "2", "replace": "old"}
	next := jar.Apply(m.Delete("drop"), m.Set("replace", "new"), m.Set("add", "3"))

	assert.Equal(t, cookie.Jar{"keep": "1", "replace": "new", "add": "3"}, next)
	assert.Equal(t, "2", jar["drop"], "source jar must not change")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	cfg := cookie.DefaultConfig()
	cfg.HttpOnly = false
	cfg.Secure = true
	cfg.Domain = "example.com"

	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	d := m.Defaults()
	assert.False(t, d.HttpOnly)
	assert.True(t, d.Secure)
	assert.Equal(t, "example.com", d.Domain)
	assert.Equal(t, "/", d.Path)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	m, err := cookie.New()
	require.NoError(t, err)

	assert.NoError(t, cookie.Validate(m.Set("__txn_abc", "v")))
	assert.ErrorIs(t, cookie.Validate(m.Set("bad name;", "v")), cookie.ErrInvalidName)
}
