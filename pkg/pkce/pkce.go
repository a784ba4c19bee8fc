package pkce

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/oauth2"
)

const MethodS256 = "S256"

// PKCE is a verifier and its S256 challenge.
type PKCE struct {
	Verifier  string
	Challenge string
	Method    string
}

// AuthCodeOptions returns the authorization URL parameters for the challenge.
func (p PKCE) AuthCodeOptions() []oauth2.AuthCodeOption {
	return []oauth2.AuthCodeOption{oauth2.S256ChallengeOption(p.Verifier)}
}

// VerifierOption returns the token exchange parameter for the verifier.
func (p PKCE) VerifierOption() oauth2.AuthCodeOption {
	return oauth2.VerifierOption(p.Verifier)
}

// Source generates the random values an authorization request needs.
type Source struct{}

func (Source) randBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// PKCE returns a fresh RFC 7636 verifier and challenge.
func (Source) PKCE() PKCE {
	verifier := oauth2.GenerateVerifier()
	return PKCE{
		Verifier:  verifier,
		Challenge: oauth2.S256ChallengeFromVerifier(verifier),
		Method:    MethodS256,
	}
}

// State returns 256 bits of randomness as lowercase hex. Hex never contains
// "__", so the state can name a transaction cookie without colliding with
// chunk names.
func (s Source) State() string {
	return hex.EncodeToString(s.randBytes(32))
}

// Nonce returns 256 bits of URL safe randomness.
func (s Source) Nonce() string {
	return base64.RawURLEncoding.EncodeToString(s.randBytes(32))
}
