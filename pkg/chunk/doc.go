// Package chunk stores opaque blobs that exceed the per-cookie size limit by
// splitting them across numbered cookies.
//
// A blob that fits is written under its base name. A larger blob becomes
// base__0, base__1, ... base__n-1. Reads prefer the base cookie, then reassemble
// chunks in index order.
//
// # Usage
//
//	a, err := chunk.New()
//	cookies, err := a.Plan(jar, "appSession", blob, cookie.WithMaxAge(3600))
//	cookie.Write(w, cookies...)
//
//	blob, err := a.Assemble(cookie.FromRequest(r), "appSession")
//	switch {
//	case errors.Is(err, chunk.ErrNotFound):
//	case errors.Is(err, chunk.ErrMalformedChunks):
//	}
//
// Plan always emits deletions for stale cookies left behind by a previous,
// larger write, so a later read never stitches old chunks onto new ones.
// Plan and Clear emit at most 2*MaxChunks deletions, whatever the jar holds.
//
// Assemble runs in time linear in the size of the jar. Indexes at or beyond
// MaxChunks and gaps in the sequence are rejected rather than partially read.
package chunk
