// Package cookie is the thin HTTP edge of the session and transaction stores.
//
// The stores never touch an http.Request or http.ResponseWriter. They read from a
// Jar, a read-only name → value view of the request cookies, and return Cookie
// values: write instructions carrying a name, a value and attributes
// (Path, Domain, Max-Age, Secure, HttpOnly, SameSite). The caller applies them
// with Write.
//
// # Usage
//
//	jar := cookie.FromRequest(r)
//	res, err := sessions.Get(r.Context(), jar)
//	if err == nil {
//	    cookie.Write(w, res.Refresh...)
//	}
//
// A Manager holds the default attributes so every store writes consistent
// cookies:
//
//	man, err := cookie.New(cookie.WithSecure(true))
//	c := man.Set("appSession", blob, cookie.WithMaxAge(3600))
//	gone := man.Delete("appSession")
//
// # Configuration
//
// Config can be populated from environment variables via github.com/caarlos0/env.
//
//	cfg := cookie.DefaultConfig()
//	_ = env.Parse(&cfg)
//	man, _ := cookie.NewFromConfig(cfg)
//
// SameSite=None without Secure is rejected with ErrInsecureSameSite.
//
// # Testing
//
// Jar.Apply replays instructions onto a jar the way a browser would, which lets
// tests drive several request/response round trips without an HTTP server.
package cookie
