package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/codec"
)

const testSecret = "a-super-secret-key-that-is-long-enough"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

// setCookies parses "Set-Cookie: name=value; ..." lines into name=value pairs.
func setCookies(t *testing.T, out string) []string {
	t.Helper()
	var pairs []string
	for line := range strings.Lines(out) {
		line = strings.TrimPrefix(strings.TrimSpace(line), "Set-Cookie: ")
		if line == "" {
			continue
		}
		pair, _, _ := strings.Cut(line, ";")
		pairs = append(pairs, pair)
	}
	return pairs
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestKeygen(t *testing.T) {
	out, err := run(t, "", "keygen", "-n", "3")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 3)
	for _, l := range lines {
		b, err := base64.RawURLEncoding.DecodeString(l)
		require.NoError(t, err)
		assert.Len(t, b, keygenBytes)
	}
	assert.NotEqual(t, lines[0], lines[1])

	_, err = run(t, "", "keygen", "-n", "0")
	assert.Error(t, err)
}

func TestSealInspect(t *testing.T) {
	t.Setenv("SESSION_SECRETS", testSecret)

	out, err := run(t, "", "seal", "--data", `{"sub":"user-1"}`, "--ttl", "10m")
	require.NoError(t, err)
	assert.Contains(t, out, "Max-Age=600")

	pairs := setCookies(t, out)
	require.Len(t, pairs, 1)
	name, blob, ok := strings.Cut(pairs[0], "=")
	require.True(t, ok)
	assert.Equal(t, "appSession", name)

	t.Run("blob argument", func(t *testing.T) {
		out, err := run(t, "", "inspect", blob)
		require.NoError(t, err)

		var got inspection
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, codec.KindSession, got.Kind)
		assert.Equal(t, "user-1", got.Body["sub"])
		assert.NotEmpty(t, got.ExpiresAt)
	})

	t.Run("wrong kind", func(t *testing.T) {
		_, err := run(t, "", "inspect", "--kind", "transaction", blob)
		assert.ErrorIs(t, err, codec.ErrKindMismatch)
	})

	t.Run("stdin payload", func(t *testing.T) {
		out, err := run(t, `{"state":"abc"}`, "seal", "--kind", "transaction", "--name", "__txn_abc")
		require.NoError(t, err)
		pairs := setCookies(t, out)
		require.Len(t, pairs, 1)
		assert.True(t, strings.HasPrefix(pairs[0], "__txn_abc="))
	})

	t.Run("no input", func(t *testing.T) {
		_, err := run(t, "", "inspect")
		assert.Error(t, err)
	})
}

func TestSealInspect_Chunked(t *testing.T) {
	t.Setenv("SESSION_SECRETS", testSecret)
	t.Setenv("COOKIE_MAX_CHUNK_BYTES", "200")

	payload := `{"sub":"user-1","extra":"` + strings.Repeat("x", 1000) + `"}`
	out, err := run(t, "", "seal", "--data", payload)
	require.NoError(t, err)

	pairs := setCookies(t, out)
	require.Greater(t, len(pairs), 1)
	assert.True(t, strings.HasPrefix(pairs[0], "appSession__0="))

	out, err = run(t, "", "inspect", "--cookie", strings.Join(pairs, "; "))
	require.NoError(t, err)
	assert.Contains(t, out, `"sub": "user-1"`)

	// a missing middle chunk is never reassembled
	broken := append(append([]string{}, pairs[:1]...), pairs[2:]...)
	_, err = run(t, "", "inspect", "--cookie", strings.Join(broken, "; "))
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	t.Setenv("SESSION_SECRETS", "")
	require.NoError(t, os.Unsetenv("SESSION_SECRETS"))
	t.Cleanup(func() { _ = os.Unsetenv("SESSION_SECRETS") })

	path := filepath.Join(t.TempDir(), "sessionkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("SESSION_SECRETS: "+testSecret+"\n"), 0o600))

	_, err := run(t, "", "seal", "--data", `{}`)
	require.Error(t, err, "secrets are required")

	out, err := run(t, "", "--config", path, "seal", "--data", `{}`)
	require.NoError(t, err)
	assert.Len(t, setCookies(t, out), 1)
}

func TestAppConfigValidate(t *testing.T) {
	cfg := testConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Session.AbsoluteDuration = 0
	cfg.Transaction.TTL = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_ABSOLUTE_DURATION")
	assert.Contains(t, err.Error(), "TRANSACTION_TTL")
}
