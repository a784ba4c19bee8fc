// Package transaction stores the short-lived state of an OAuth authorization
// request (state, nonce, PKCE verifier, return URL) in an encrypted cookie
// named "__txn_<state>".
//
// The cookie is sealed as a codec.KindTransaction blob, so a session or
// connection cookie renamed to "__txn_<state>" never decrypts as a transaction.
//
// # Usage
//
//	data, p := txns.Begin("/dashboard", transaction.WithScope("openid profile"))
//	cookies, err := txns.Set(ctx, cookie.FromRequest(r), data, 0)
//	cookie.Write(w, cookies...)
//	http.Redirect(w, r, conf.AuthCodeURL(data.State, p.AuthCodeOptions()...), http.StatusFound)
//
// On the callback:
//
//	tx, err := txns.Get(ctx, cookie.FromRequest(r), r.URL.Query().Get("state"))
//	if err != nil {
//	    // errors.Is(err, transaction.ErrInvalidTransaction) is always true;
//	    // errors.Is(err, codec.ErrExpired) etc. tells why.
//	}
//	cookie.Write(w, tx.Clear...)
//
// # Single use
//
// Get returns the deletions for the cookie in Transaction.Clear. A browser may
// still replay a copy; WithReplayGuard closes that by remembering every redeemed
// blob until it expires, after which the codec rejects it anyway.
//
// # Parallel transactions
//
// By default every attempt has its own cookie so several tabs can log in at
// once. WithParallelTransactions(false) keeps a single "__txn_" cookie; the
// sealed state is still checked against the callback state.
package transaction
