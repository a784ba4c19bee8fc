package transaction

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/chunk"
	"github.com/dmitrymomot/sessionkit/pkg/codec"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/pkce"
	"github.com/dmitrymomot/sessionkit/pkg/replay"
)

// Data is the state an authorization request needs back on its callback.
type Data struct {
	State        string `json:"state"`
	Nonce        string `json:"nonce,omitempty"`
	CodeVerifier string `json:"codeVerifier,omitempty"`
	ResponseType string `json:"responseType,omitempty"`
	ReturnTo     string `json:"returnTo,omitempty"`
	Scope        string `json:"scope,omitempty"`
	MaxAge       int    `json:"maxAge,omitempty"`
	Connection   string `json:"connection,omitempty"`
}

func (Data) PayloadKind() codec.Kind { return codec.KindTransaction }

// Transaction is a successfully redeemed transaction cookie.
type Transaction struct {
	Data      Data
	ExpiresAt time.Time

	// Clear deletes the transaction cookie. Write it with the callback response.
	Clear []cookie.Cookie
}

// Store keeps OAuth transactions in encrypted cookies.
type Store struct {
	codec      *codec.Codec
	chunks     *chunk.Assembler
	prefix     string
	ttl        time.Duration
	parallel   bool
	cookieOpts []cookie.Option
	guard      replay.Guard
	logger     *slog.Logger
	source     pkce.Source
}

// New creates a Store. Defaults: prefix "__txn_", TTL one hour, parallel
// transactions enabled, no replay guard, silent logger.
func New(c *codec.Codec, a *chunk.Assembler, opts ...Option) (*Store, error) {
	if c == nil || a == nil {
		return nil, errors.New("transaction: codec and assembler are required")
	}

	s := &Store{
		codec:    c,
		chunks:   a,
		prefix:   DefaultConfig().CookiePrefix,
		ttl:      DefaultConfig().TTL,
		parallel: true,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(logger.Component("transaction"))
	return s, nil
}

// CookieName returns the cookie that holds the transaction for state.
func (s *Store) CookieName(state string) string {
	if !s.parallel {
		return s.prefix
	}
	return s.prefix + state
}

// Set seals data and returns the cookies that store it. A non-positive ttl
// uses the configured default.
func (s *Store) Set(ctx context.Context, jar cookie.Jar, data Data, ttl time.Duration) ([]cookie.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrInvalidTransaction, err)
	}
	if data.State == "" {
		return nil, errors.Join(ErrInvalidTransaction, ErrMissingState)
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	if strings.Contains(data.State, chunk.Separator) {
		return nil, errors.Join(ErrInvalidTransaction, ErrInvalidState)
	}

	name := s.CookieName(data.State)
	if err := cookie.Validate(cookie.Cookie{Name: name}); err != nil {
		return nil, errors.Join(ErrInvalidTransaction, ErrInvalidState, err)
	}

	blob, err := codec.Seal(s.codec, data, s.codec.Now().Add(ttl))
	if err != nil {
		return nil, errors.Join(ErrInvalidTransaction, err)
	}

	opts := append(append([]cookie.Option{}, s.cookieOpts...), cookie.WithMaxAge(maxAge(ttl)))
	cookies, err := s.chunks.Plan(jar, name, blob, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidTransaction, err)
	}

	return cookies, nil
}

// Get redeems the transaction for state.
//
// Every failure is returned as errors.Join(ErrInvalidTransaction, cause), where
// cause is one of chunk.ErrNotFound, chunk.ErrMalformedChunks,
// codec.ErrAuthentication, codec.ErrExpired, codec.ErrKindMismatch,
// codec.ErrMalformedPayload, ErrStateMismatch or ErrInvalidState. A cookie
// already redeemed through the replay guard is reported as chunk.ErrNotFound.
func (s *Store) Get(ctx context.Context, jar cookie.Jar, state string) (*Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrInvalidTransaction, err)
	}

	if strings.Contains(state, chunk.Separator) {
		return nil, errors.Join(ErrInvalidTransaction, ErrInvalidState)
	}

	name := s.CookieName(state)
	log := s.logger.With(logger.Cookie(name))

	blob, err := s.chunks.Assemble(jar, name)
	if err != nil {
		if !errors.Is(err, chunk.ErrNotFound) {
			log.WarnContext(ctx, "malformed transaction cookie", logger.Error(err))
		}
		return nil, errors.Join(ErrInvalidTransaction, err)
	}

	env, err := codec.Open[Data](s.codec, blob)
	if err != nil {
		switch {
		case errors.Is(err, codec.ErrExpired):
			log.DebugContext(ctx, "transaction expired")
		default:
			log.WarnContext(ctx, "transaction cookie rejected", logger.Kind(codec.KindTransaction.String()), logger.Error(err))
		}
		return nil, errors.Join(ErrInvalidTransaction, err)
	}

	if env.Body.State != state {
		log.WarnContext(ctx, "transaction state mismatch", logger.State(state))
		return nil, errors.Join(ErrInvalidTransaction, ErrStateMismatch)
	}

	if s.guard != nil {
		if err := s.guard.Consume(ctx, replay.Key(blob), env.ExpiresAt); err != nil {
			if errors.Is(err, replay.ErrConsumed) {
				log.WarnContext(ctx, "transaction replayed", logger.State(state))
				return nil, errors.Join(ErrInvalidTransaction, chunk.ErrNotFound, err)
			}
			log.ErrorContext(ctx, "replay guard failed", logger.Error(err))
			return nil, errors.Join(ErrInvalidTransaction, err)
		}
	}

	return &Transaction{
		Data:      env.Body,
		ExpiresAt: env.ExpiresAt,
		Clear:     s.Delete(jar, state),
	}, nil
}

// Delete returns the cookies that clear the transaction for state. A state
// containing "__" clears nothing: its name would address another state's chunk.
func (s *Store) Delete(jar cookie.Jar, state string) []cookie.Cookie {
	if strings.Contains(state, chunk.Separator) {
		return nil
	}
	return s.chunks.Clear(jar, s.CookieName(state), s.cookieOpts...)
}

// BeginOption customises the Data returned by Begin.
type BeginOption func(*Data)

func WithScope(scope string) BeginOption {
	return func(d *Data) { d.Scope = scope }
}

func WithConnection(connection string) BeginOption {
	return func(d *Data) { d.Connection = connection }
}

// WithMaxAge sets the OIDC max_age the callback should enforce.
func WithMaxAge(seconds int) BeginOption {
	return func(d *Data) { d.MaxAge = seconds }
}

func WithResponseType(rt string) BeginOption {
	return func(d *Data) { d.ResponseType = rt }
}

// Begin returns fresh transaction data for a new authorization request along
// with the PKCE pair whose verifier it carries.
func (s *Store) Begin(returnTo string, opts ...BeginOption) (Data, pkce.PKCE) {
	p := s.source.PKCE()
	d := Data{
		State:        s.source.State(),
		Nonce:        s.source.Nonce(),
		CodeVerifier: p.Verifier,
		ResponseType: "code",
		ReturnTo:     returnTo,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d, p
}

func maxAge(ttl time.Duration) int {
	secs := int((ttl + time.Second - 1) / time.Second)
	return max(secs, 1)
}
