package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"golang.org/x/crypto/hkdf"
)

const (
	minSecretLength = 32
	keySize         = 32 // A256GCM

	// hkdfInfo separates the derived content keys from any other use of the secret.
	hkdfInfo = "sessionkit JWE CEK"

	kindHeader jose.HeaderKey = "knd"
)

var (
	keyAlgorithms      = []jose.KeyAlgorithm{jose.DIRECT}
	contentEncryptions = []jose.ContentEncryption{jose.A256GCM}
)

// Envelope is an opened blob.
type Envelope[T any] struct {
	Kind      Kind
	IssuedAt  time.Time
	ExpiresAt time.Time
	Body      T
}

type key struct {
	id  string
	cek []byte
}

// Codec seals payloads into compact JWE strings (dir + A256GCM) and opens them
// again. It holds only read-only key material and is safe for concurrent use.
type Codec struct {
	keys []key
	now  func() time.Time
}

// New derives one content key per secret. The first secret seals; every
// secret is tried when opening so keys can be rotated without logging users out.
func New(secrets []string, opts ...Option) (*Codec, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	c := &Codec{now: time.Now}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		k, err := deriveKey(s)
		if err != nil {
			return nil, err
		}
		c.keys = append(c.keys, k)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func deriveKey(secret string) (key, error) {
	cek := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), cek); err != nil {
		return key{}, errors.Join(ErrEncryption, err)
	}
	sum := sha256.Sum256(cek)
	return key{id: hex.EncodeToString(sum[:8]), cek: cek}, nil
}

// Now returns the codec's current time.
func (c *Codec) Now() time.Time {
	return c.now()
}

type privateClaims struct {
	Body json.RawMessage `json:"body"`
}

// SealKind encrypts payload under kind with an exp claim of expiresAt.
// The kind travels in the protected header, which is the AEAD additional data.
func SealKind[T any](c *Codec, kind Kind, payload T, expiresAt time.Time) (string, error) {
	if !kind.valid() {
		return "", ErrUnknownKind
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Join(ErrEncryption, err)
	}

	k := c.keys[0]
	opts := (&jose.EncrypterOptions{}).
		WithType("JWT").
		WithHeader(kindHeader, string(kind))

	enc, err := jose.NewEncrypter(jose.A256GCM, jose.Recipient{Algorithm: jose.DIRECT, Key: k.cek, KeyID: k.id}, opts)
	if err != nil {
		return "", errors.Join(ErrEncryption, err)
	}

	std := jwt.Claims{
		IssuedAt: jwt.NewNumericDate(c.now()),
		Expiry:   jwt.NewNumericDate(expiresAt),
	}

	blob, err := jwt.Encrypted(enc).Claims(std).Claims(privateClaims{Body: body}).Serialize()
	if err != nil {
		return "", errors.Join(ErrEncryption, err)
	}

	return blob, nil
}

// Seal is SealKind with the kind taken from the payload type.
func Seal[T Payload](c *Codec, payload T, expiresAt time.Time) (string, error) {
	return SealKind(c, payload.PayloadKind(), payload, expiresAt)
}

// OpenKind authenticates blob, then rejects it if it is expired or was sealed
// for a kind other than kind. Only then is the body decoded into T.
//
// OpenKind is total: any input yields either an envelope or one of
// ErrAuthentication, ErrExpired, ErrKindMismatch, ErrMalformedPayload.
func OpenKind[T any](c *Codec, blob string, kind Kind) (env Envelope[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			env = Envelope[T]{}
			err = fmt.Errorf("%w: %v", ErrAuthentication, r)
		}
	}()

	if !kind.valid() {
		return env, ErrUnknownKind
	}

	tok, err := jwt.ParseEncrypted(blob, keyAlgorithms, contentEncryptions)
	if err != nil || len(tok.Headers) == 0 {
		return env, ErrAuthentication
	}
	header := tok.Headers[0]

	var (
		std  jwt.Claims
		priv privateClaims
	)
	if err := c.decrypt(tok, header.KeyID, &std, &priv); err != nil {
		return env, err
	}

	// From here on the header is authenticated.
	if std.Expiry == nil || c.now().Unix() >= std.Expiry.Time().Unix() {
		return env, ErrExpired
	}

	sealed, _ := header.ExtraHeaders[kindHeader].(string)
	if Kind(sealed) != kind {
		return env, fmt.Errorf("%w: sealed as %q, opened as %q", ErrKindMismatch, sealed, kind)
	}

	if err := json.Unmarshal(priv.Body, &env.Body); err != nil {
		return Envelope[T]{}, errors.Join(ErrMalformedPayload, err)
	}

	env.Kind = kind
	env.ExpiresAt = std.Expiry.Time()
	if std.IssuedAt != nil {
		env.IssuedAt = std.IssuedAt.Time()
	}

	return env, nil
}

// Open is OpenKind with the expected kind taken from T.
// T must be a value type; its zero value supplies the kind.
func Open[T Payload](c *Codec, blob string) (Envelope[T], error) {
	var zero T
	return OpenKind[T](c, blob, zero.PayloadKind())
}

// decrypt tries the key named by kid first, then the rest.
func (c *Codec) decrypt(tok *jwt.JSONWebToken, kid string, out ...any) error {
	ordered := make([]key, 0, len(c.keys))
	for _, k := range c.keys {
		if k.id == kid {
			ordered = append([]key{k}, ordered...)
			continue
		}
		ordered = append(ordered, k)
	}

	for _, k := range ordered {
		if err := tok.Claims(k.cek, out...); err == nil {
			return nil
		}
	}

	return ErrAuthentication
}
