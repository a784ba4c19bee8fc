package session

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionkit/pkg/chunk"
	"github.com/dmitrymomot/sessionkit/pkg/codec"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Result is a successfully loaded session.
type Result struct {
	Data Data

	// ExpiresAt is the inactivity expiry after this read, capped at Data.Internal.ExpiresAt.
	ExpiresAt time.Time

	// Connections holds every connection token set that opened, keyed by connection.
	Connections map[string]ConnectionTokenSet

	// Refresh must be written with the response: re-sealed cookies when the
	// session is rolling and deletions for connection cookies that failed to open.
	Refresh []cookie.Cookie
}

// Store keeps sessions in encrypted, chunked cookies.
type Store struct {
	codec      *codec.Codec
	chunks     *chunk.Assembler
	config     Config
	cookieOpts []cookie.Option
	logger     *slog.Logger
}

// New creates a Store with DefaultConfig unless overridden.
func New(c *codec.Codec, a *chunk.Assembler, opts ...Option) (*Store, error) {
	if c == nil || a == nil {
		return nil, errors.New("session: codec and assembler are required")
	}

	s := &Store{
		codec:  c,
		chunks: a,
		config: DefaultConfig(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.config.CookieName == "" || s.config.AbsoluteDuration <= 0 || s.config.MaxConnections <= 0 {
		return nil, errors.New("session: cookie name, absolute duration and max connections are required")
	}

	s.logger = s.logger.With(logger.Component("session"))
	return s, nil
}

// Config returns the effective configuration.
func (s *Store) Config() Config {
	return s.config
}

// Set seals data into the session cookie. Zero Internal fields are filled:
// a random SID, CreatedAt=now and ExpiresAt=now+AbsoluteDuration.
func (s *Store) Set(ctx context.Context, jar cookie.Jar, data Data) ([]cookie.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	now := s.codec.Now()
	if data.Internal.SID == "" {
		data.Internal.SID = uuid.NewString()
	}
	if data.Internal.CreatedAt.IsZero() {
		data.Internal.CreatedAt = now
	}
	if data.Internal.ExpiresAt.IsZero() {
		data.Internal.ExpiresAt = data.Internal.CreatedAt.Add(s.config.AbsoluteDuration)
	}
	if !now.Before(data.Internal.ExpiresAt) {
		return nil, errors.Join(ErrInvalidSession, codec.ErrExpired)
	}

	cookies, _, err := s.seal(jar, data, now)
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	s.logger.DebugContext(ctx, "session stored", logger.SessionID(data.Internal.SID), logger.Chunks(len(cookies)))
	return cookies, nil
}

// Get loads the session from jar. It never writes: cookies to send back are in
// Result.Refresh.
//
// Failures of the session cookie are returned as errors.Join(ErrNoSession,
// cause). Connection cookies are independent: one that fails to open is
// dropped from Result.Connections and cleared through Result.Refresh.
func (s *Store) Get(ctx context.Context, jar cookie.Jar) (*Result, error) {
	st, err := s.load(ctx, jar)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, jar, st), nil
}

func (s *Store) result(ctx context.Context, jar cookie.Jar, st *loaded) *Result {
	res := &Result{
		Data:        st.data,
		ExpiresAt:   st.expiresAt,
		Connections: make(map[string]ConnectionTokenSet, len(st.connections)),
		Refresh:     st.drops,
	}
	for _, c := range st.connections {
		res.Connections[c.set.Connection] = c.set
	}

	if !s.config.Rolling {
		return res
	}

	cookies, exp, err := s.seal(jar, st.data, st.now)
	if err != nil {
		// the session is valid as read; keep serving it without sliding
		s.logger.ErrorContext(ctx, "session refresh failed", logger.Error(err))
		return res
	}
	res.ExpiresAt = exp
	res.Refresh = append(res.Refresh, cookies...)

	for _, c := range st.connections {
		cookies, err := s.sealConnection(jar, c.slot, st.data.Internal.SID, c.set, exp, st.now)
		if err != nil {
			s.logger.ErrorContext(ctx, "connection refresh failed", logger.Connection(c.set.Connection), logger.Error(err))
			continue
		}
		res.Refresh = append(res.Refresh, cookies...)
	}

	return res
}

// SetConnectionTokenSet stores ts next to the current session, replacing any
// token set for the same connection. The returned cookies include the
// session's own refresh instructions.
func (s *Store) SetConnectionTokenSet(ctx context.Context, jar cookie.Jar, ts ConnectionTokenSet) ([]cookie.Cookie, error) {
	if ts.Connection == "" {
		return nil, errors.Join(ErrInvalidSession, ErrMissingConnection)
	}

	st, err := s.load(ctx, jar)
	if err != nil {
		return nil, err
	}
	res := s.result(ctx, jar, st)

	slot := -1
	used := make(map[int]bool, len(st.connections))
	for _, c := range st.connections {
		used[c.slot] = true
		if c.set.Connection == ts.Connection {
			slot = c.slot
		}
	}
	for i := 0; slot < 0 && i < s.config.MaxConnections; i++ {
		if !used[i] {
			slot = i
		}
	}
	if slot < 0 {
		return nil, errors.Join(ErrInvalidSession, ErrTooManyConnections)
	}

	name := s.connectionName(slot)
	out := make([]cookie.Cookie, 0, len(res.Refresh)+1)
	for _, c := range res.Refresh {
		if !belongsTo(c.Name, name) {
			out = append(out, c)
		}
	}

	cookies, err := s.sealConnection(jar, slot, res.Data.Internal.SID, ts, res.ExpiresAt, st.now)
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	return append(out, cookies...), nil
}

// Delete returns the cookies that clear the session and every connection cookie.
func (s *Store) Delete(jar cookie.Jar) []cookie.Cookie {
	out := s.chunks.Clear(jar, s.config.CookieName, s.cookieOpts...)
	for i := range s.config.MaxConnections {
		out = append(out, s.chunks.Clear(jar, s.connectionName(i), s.cookieOpts...)...)
	}
	return out
}

type connection struct {
	slot int
	set  ConnectionTokenSet
}

type loaded struct {
	now         time.Time
	data        Data
	expiresAt   time.Time
	connections []connection
	drops       []cookie.Cookie
}

func (s *Store) load(ctx context.Context, jar cookie.Jar) (*loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrNoSession, err)
	}

	log := s.logger.With(logger.Cookie(s.config.CookieName))

	blob, err := s.chunks.Assemble(jar, s.config.CookieName)
	if err != nil {
		if !errors.Is(err, chunk.ErrNotFound) {
			log.WarnContext(ctx, "malformed session cookie", logger.Error(err))
		}
		return nil, errors.Join(ErrNoSession, err)
	}

	env, err := codec.Open[Data](s.codec, blob)
	if err != nil {
		if errors.Is(err, codec.ErrExpired) {
			log.DebugContext(ctx, "session expired")
		} else {
			log.WarnContext(ctx, "session cookie rejected", logger.Kind(codec.KindSession.String()), logger.Error(err))
		}
		return nil, errors.Join(ErrNoSession, err)
	}

	now := s.codec.Now()
	if abs := env.Body.Internal.ExpiresAt; !abs.IsZero() && !now.Before(abs) {
		log.DebugContext(ctx, "session reached absolute expiry", logger.SessionID(env.Body.Internal.SID))
		return nil, errors.Join(ErrNoSession, codec.ErrExpired)
	}

	if env.Body.Internal.ExpiresAt.IsZero() {
		created := env.Body.Internal.CreatedAt
		if created.IsZero() {
			created = env.IssuedAt
		}
		env.Body.Internal.ExpiresAt = created.Add(s.config.AbsoluteDuration)
	}

	st := &loaded{now: now, data: env.Body, expiresAt: env.ExpiresAt}
	sid := env.Body.Internal.SID

	for i := range s.config.MaxConnections {
		name := s.connectionName(i)
		blob, err := s.chunks.Assemble(jar, name)
		if errors.Is(err, chunk.ErrNotFound) {
			continue
		}

		var cenv codec.Envelope[connectionPayload]
		if err == nil {
			cenv, err = codec.Open[connectionPayload](s.codec, blob)
		}
		if err == nil && cenv.Body.SID != sid {
			err = errors.New("session: connection cookie belongs to another session")
		}
		if err != nil {
			if !errors.Is(err, codec.ErrExpired) {
				log.WarnContext(ctx, "connection cookie dropped", logger.Cookie(name), logger.Error(err))
			}
			st.drops = append(st.drops, s.chunks.Clear(jar, name, s.cookieOpts...)...)
			continue
		}

		st.connections = append(st.connections, connection{slot: i, set: cenv.Body.TokenSet})
	}

	return st, nil
}

// seal writes data with an expiry of min(now+inactivity, absolute).
func (s *Store) seal(jar cookie.Jar, data Data, now time.Time) ([]cookie.Cookie, time.Time, error) {
	exp := data.Internal.ExpiresAt
	if d := s.config.InactivityDuration; d > 0 && now.Add(d).Before(exp) {
		exp = now.Add(d)
	}

	blob, err := codec.Seal(s.codec, data, exp)
	if err != nil {
		return nil, time.Time{}, err
	}

	cookies, err := s.chunks.Plan(jar, s.config.CookieName, blob, s.writeOptions(exp, now)...)
	if err != nil {
		return nil, time.Time{}, err
	}
	return cookies, exp, nil
}

func (s *Store) sealConnection(jar cookie.Jar, slot int, sid string, ts ConnectionTokenSet, exp, now time.Time) ([]cookie.Cookie, error) {
	blob, err := codec.Seal(s.codec, connectionPayload{SID: sid, TokenSet: ts}, exp)
	if err != nil {
		return nil, err
	}
	return s.chunks.Plan(jar, s.connectionName(slot), blob, s.writeOptions(exp, now)...)
}

func (s *Store) writeOptions(exp, now time.Time) []cookie.Option {
	secs := max(int(exp.Sub(now)/time.Second), 1)
	return append(append([]cookie.Option{}, s.cookieOpts...), cookie.WithMaxAge(secs))
}

func (s *Store) connectionName(slot int) string {
	return s.config.ConnectionCookiePrefix + strconv.Itoa(slot)
}

// belongsTo reports whether name is base or one of its chunks.
func belongsTo(name, base string) bool {
	return name == base || strings.HasPrefix(name, base+"__")
}
