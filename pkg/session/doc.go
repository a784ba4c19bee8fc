// Package session keeps an authenticated user's session in encrypted cookies,
// so the server holds no session state.
//
// The session (user claims, token set, bookkeeping) is sealed as a
// codec.KindSession blob under "appSession", split into "appSession__0",
// "appSession__1", ... when it outgrows one cookie. Access tokens obtained
// later for upstream connections live in separate "__FC_<n>" cookies sealed as
// codec.KindConnectionTokenSet and bound to the session ID.
//
// # Lifetimes
//
// A session has two expiries. The absolute one, Data.Internal.ExpiresAt, is
// fixed at creation. The inactivity one is the blob's exp claim; with rolling
// sessions every successful Get slides it forward, never past the absolute one.
// Reads at or after either expiry fail with codec.ErrExpired.
//
// # Usage
//
//	store, _ := session.New(c, assembler)
//
//	// after the code exchange
//	cookies, err := store.Set(ctx, cookie.FromRequest(r), session.Data{
//	    User:     session.User{Sub: claims.Sub, Email: claims.Email},
//	    TokenSet: session.TokenSetFromOAuth2(tok),
//	})
//	cookie.Write(w, cookies...)
//
//	// on later requests
//	res, err := store.Get(ctx, cookie.FromRequest(r))
//	if errors.Is(err, session.ErrNoSession) { ... }
//	cookie.Write(w, res.Refresh...)
//
// Get never writes to the response itself; the caller decides whether to send
// Result.Refresh. Middleware and RequireSession do it for net/http handlers and
// expose the session through FromContext.
//
// # Connection token sets
//
//	cookies, err := store.SetConnectionTokenSet(ctx, jar, session.ConnectionTokenSet{
//	    Connection:  "github",
//	    AccessToken: tok.AccessToken,
//	    ExpiresAt:   tok.Expiry,
//	})
//
// A connection cookie that fails to open, expired or left over from another
// session is dropped and its deletion added to Result.Refresh; the session itself
// stays valid.
//
// # Logout
//
//	cookie.Write(w, store.Delete(cookie.FromRequest(r))...)
package session
