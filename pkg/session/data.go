package session

import (
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/sessionkit/pkg/codec"
)

// Data is everything the session cookie holds.
type Data struct {
	User     User     `json:"user"`
	TokenSet TokenSet `json:"tokenSet"`
	Internal Internal `json:"internal"`
}

func (Data) PayloadKind() codec.Kind { return codec.KindSession }

// User carries the ID token claims the application needs.
type User struct {
	Sub           string         `json:"sub"`
	Name          string         `json:"name,omitempty"`
	Nickname      string         `json:"nickname,omitempty"`
	Email         string         `json:"email,omitempty"`
	EmailVerified bool           `json:"email_verified,omitempty"`
	Picture       string         `json:"picture,omitempty"`
	OrgID         string         `json:"org_id,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// TokenSet is the token endpoint response of the login.
type TokenSet struct {
	AccessToken  string    `json:"accessToken"`
	IDToken      string    `json:"idToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	TokenType    string    `json:"tokenType,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitzero"`
}

// Internal is bookkeeping owned by the store. Set fills zero fields.
type Internal struct {
	SID       string    `json:"sid"`
	CreatedAt time.Time `json:"createdAt"`

	// ExpiresAt is the absolute expiry; reads after it fail with codec.ErrExpired.
	ExpiresAt time.Time `json:"expiresAt"`
}

// ConnectionTokenSet is an access token for an upstream connection obtained
// after login, kept in its own cookie.
type ConnectionTokenSet struct {
	Connection  string    `json:"connection"`
	AccessToken string    `json:"accessToken"`
	Scope       string    `json:"scope,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitzero"`
	LoginHint   string    `json:"loginHint,omitempty"`
}

// connectionPayload binds a connection token set to the session that stored it.
type connectionPayload struct {
	SID      string             `json:"sid"`
	TokenSet ConnectionTokenSet `json:"tokenSet"`
}

func (connectionPayload) PayloadKind() codec.Kind { return codec.KindConnectionTokenSet }

// OAuth2Token converts the token set for use with an oauth2.TokenSource.
func (ts TokenSet) OAuth2Token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  ts.AccessToken,
		TokenType:    ts.TokenType,
		RefreshToken: ts.RefreshToken,
		Expiry:       ts.ExpiresAt,
	}
	extra := map[string]any{}
	if ts.IDToken != "" {
		extra["id_token"] = ts.IDToken
	}
	if ts.Scope != "" {
		extra["scope"] = ts.Scope
	}
	if len(extra) > 0 {
		tok = tok.WithExtra(extra)
	}
	return tok
}

// TokenSetFromOAuth2 builds a token set from a code exchange result. The ID
// token and scope are read from the token's extra fields.
func TokenSetFromOAuth2(tok *oauth2.Token) TokenSet {
	if tok == nil {
		return TokenSet{}
	}
	ts := TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    tok.Expiry,
	}
	if v, ok := tok.Extra("id_token").(string); ok {
		ts.IDToken = v
	}
	if v, ok := tok.Extra("scope").(string); ok {
		ts.Scope = v
	}
	return ts
}

// OAuth2Token converts the connection token set to an *oauth2.Token.
func (ts ConnectionTokenSet) OAuth2Token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken: ts.AccessToken,
		TokenType:   "Bearer",
		Expiry:      ts.ExpiresAt,
	}
	if ts.Scope != "" {
		tok = tok.WithExtra(map[string]any{"scope": ts.Scope})
	}
	return tok
}
