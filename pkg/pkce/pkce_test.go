package pkce_test

import (
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/pkce"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestSource_PKCE(t *testing.T) {
	t.Parallel()
	p := pkce.Source{}.PKCE()

	assert.NotEmpty(t, p.Verifier, "Empty pkce verifier")
	assert.Len(t, p.Verifier, 43)
	assert.Equal(t, pkce.MethodS256, p.Method, "Unexpected PKCE method")

	sum := sha256.Sum256([]byte(p.Verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), p.Challenge)

	assert.Len(t, p.AuthCodeOptions(), 1)
	assert.NotNil(t, p.VerifierOption())
}

func TestSource_State(t *testing.T) {
	t.Parallel()
	var src pkce.Source

	state := src.State()
	assert.NotEmpty(t, state, "Empty state generated")
	assert.Regexp(t, `^[0-9a-f]{64}$`, state)
	assert.NotContains(t, state, "__")
	assert.NotEqual(t, state, src.State())

	nonce := src.Nonce()
	assert.Regexp(t, urlSafe, nonce)
	assert.NotEqual(t, state, nonce)
}
