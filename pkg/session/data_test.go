package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestTokenSet_OAuth2(t *testing.T) {
	t.Parallel()
	expiry := time.Unix(1_700_003_600, 0)

	ts := session.TokenSet{
		AccessToken:  "at",
		IDToken:      "idt",
		RefreshToken: "rt",
		Scope:        "openid email",
		TokenType:    "Bearer",
		ExpiresAt:    expiry,
	}

	tok := ts.OAuth2Token()
	assert.Equal(t, "at", tok.AccessToken)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.Equal(t, expiry, tok.Expiry)
	assert.Equal(t, "idt", tok.Extra("id_token"))

	assert.Equal(t, ts, session.TokenSetFromOAuth2(tok))
}

func TestTokenSetFromOAuth2(t *testing.T) {
	t.Parallel()

	assert.Equal(t, session.TokenSet{}, session.TokenSetFromOAuth2(nil))

	tok := &oauth2.Token{AccessToken: "at", TokenType: "Bearer"}
	assert.Equal(t, session.TokenSet{AccessToken: "at", TokenType: "Bearer"}, session.TokenSetFromOAuth2(tok))
}

func TestConnectionTokenSet_OAuth2Token(t *testing.T) {
	t.Parallel()
	ts := session.ConnectionTokenSet{Connection: "github", AccessToken: "gh", Scope: "repo"}

	tok := ts.OAuth2Token()
	assert.Equal(t, "gh", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
	assert.Equal(t, "repo", tok.Extra("scope"))
	assert.True(t, tok.Valid())
}
