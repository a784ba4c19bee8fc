// Package pkce generates the state, nonce and PKCE verifier/challenge pair for
// a new authorization request.
//
//	var src pkce.Source
//	p := src.PKCE()
//	url := conf.AuthCodeURL(src.State(), p.AuthCodeOptions()...)
//	// on callback
//	tok, err := conf.Exchange(ctx, code, p.VerifierOption())
//
// States are lowercase hex and safe to embed in transaction cookie names;
// nonces are base64url.
package pkce
