// Package codec seals typed payloads into authenticated, encrypted strings and
// opens them again.
//
// A blob is a compact JWE (alg "dir", enc "A256GCM") produced with
// github.com/go-jose/go-jose/v4. The 256-bit content key is derived from each
// configured secret with HKDF-SHA256. Every blob carries:
//
//   - an exp claim, checked on open (ErrExpired);
//   - a kind in the protected header ("knd"). The protected header is the AEAD
//     additional data, so the kind cannot be swapped without failing
//     authentication, and a blob sealed for one kind is refused when opened as
//     another (ErrKindMismatch) even if the bodies are structurally compatible.
//
// # Usage
//
//	c, err := codec.New([]string{os.Getenv("SESSION_SECRET")})
//
//	blob, err := codec.Seal(c, sessionData, time.Now().Add(time.Hour))
//	env, err := codec.Open[session.Data](c, blob)
//
// Types implementing Payload carry their kind, so Seal and Open need no kind
// argument. SealKind and OpenKind take the kind explicitly for any other type.
//
// # Error Handling
//
// Open never panics on adversarial input. It returns exactly one of
// ErrAuthentication, ErrExpired, ErrKindMismatch or ErrMalformedPayload, checked
// in that order; use errors.Is.
//
// # Key Rotation
//
// Pass several secrets to New: the first seals, all of them open. Blobs carry a
// key id so the matching key is tried first.
package codec
