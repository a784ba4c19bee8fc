package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/session"
	"github.com/dmitrymomot/sessionkit/pkg/transaction"
)

const shutdownTimeout = 5 * time.Second

func demoCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a demo login flow against a built-in fake identity provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx := cmd.Context()
			st, err := buildStores(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = st.closeGuard() }()

			return serve(ctx, cfg.Addr, newDemoRouter(st), st.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides DEMO_ADDR")
	return cmd
}

// serve runs the server until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.InfoContext(ctx, "demo server started", slog.String("addr", addr))

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "demo server shutdown", logger.Error(err))
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return runErr
	}
	log.Info("demo server stopped")
	return nil
}

type demo struct {
	sessions     *session.Store
	transactions *transaction.Store
	oauth        *oauth2.Config
	log          *slog.Logger
}

func newDemoRouter(st *stores) http.Handler {
	d := &demo{
		sessions:     st.sessions,
		transactions: st.transactions,
		log:          st.log,
		oauth: &oauth2.Config{
			ClientID:    "sessionkit-demo",
			RedirectURL: "/callback",
			Scopes:      []string{"openid", "profile", "email"},
			Endpoint:    oauth2.Endpoint{AuthURL: "/authorize"},
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", d.home)
	r.Get("/login", d.login)
	r.Get("/authorize", d.authorize)
	r.Get("/callback", d.callback)
	r.Get("/logout", d.logout)
	r.Post("/connect/{connection}", d.connect)

	r.Group(func(r chi.Router) {
		r.Use(d.sessions.RequireSession)
		r.Get("/me", d.me)
	})

	return r
}

func (d *demo) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("GET /login to sign in, /me to see the session, /logout to sign out\n"))
}

// login starts a transaction and sends the browser to the authorization endpoint.
func (d *demo) login(w http.ResponseWriter, r *http.Request) {
	var opts []transaction.BeginOption
	if c := r.URL.Query().Get("connection"); c != "" {
		opts = append(opts, transaction.WithConnection(c))
	}
	opts = append(opts, transaction.WithScope(strings.Join(d.oauth.Scopes, " ")))

	data, p := d.transactions.Begin(safeReturnTo(r.URL.Query().Get("returnTo")), opts...)

	cookies, err := d.transactions.Set(r.Context(), cookie.FromRequest(r), data, 0)
	if err != nil {
		d.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	cookie.Write(w, cookies...)

	authOpts := append(p.AuthCodeOptions(), oauth2.SetAuthURLParam("nonce", data.Nonce))
	http.Redirect(w, r, d.oauth.AuthCodeURL(data.State, authOpts...), http.StatusFound)
}

// authorize is the fake identity provider: it approves every request and
// hands the code challenge back as the authorization code.
func (d *demo) authorize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("code_challenge_method") != "S256" || q.Get("code_challenge") == "" {
		http.Error(w, "PKCE required", http.StatusBadRequest)
		return
	}
	back := url.Values{
		"state": {q.Get("state")},
		"code":  {q.Get("code_challenge")},
	}
	http.Redirect(w, r, q.Get("redirect_uri")+"?"+back.Encode(), http.StatusFound)
}

func (d *demo) callback(w http.ResponseWriter, r *http.Request) {
	jar := cookie.FromRequest(r)
	state := r.URL.Query().Get("state")

	tx, err := d.transactions.Get(r.Context(), jar, state)
	if err != nil {
		cookie.Write(w, d.transactions.Delete(jar, state)...)
		d.fail(w, r, http.StatusBadRequest, err)
		return
	}
	cookie.Write(w, tx.Clear...)

	if r.URL.Query().Get("code") != oauth2.S256ChallengeFromVerifier(tx.Data.CodeVerifier) {
		d.fail(w, r, http.StatusBadRequest, errors.New("code verifier mismatch"))
		return
	}

	accessToken, err := randomToken()
	if err != nil {
		d.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	data := session.Data{
		User: session.User{
			Sub:   "demo|" + state[:min(len(state), 12)],
			Name:  "Demo User",
			Email: "demo@example.com",
		},
		TokenSet: session.TokenSetFromOAuth2(&oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			Expiry:      time.Now().Add(time.Hour),
		}),
	}
	data.TokenSet.Scope = tx.Data.Scope

	cookies, err := d.sessions.Set(r.Context(), jar.Apply(tx.Clear...), data)
	if err != nil {
		d.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	cookie.Write(w, cookies...)

	returnTo := tx.Data.ReturnTo
	if returnTo == "" {
		returnTo = "/me"
	}
	http.Redirect(w, r, returnTo, http.StatusFound)
}

type meResponse struct {
	User        session.User `json:"user"`
	SID         string       `json:"sid"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	Connections []string     `json:"connections"`
}

func (d *demo) me(w http.ResponseWriter, r *http.Request) {
	res := session.MustFromContext(r.Context())

	conns := make([]string, 0, len(res.Connections))
	for name := range res.Connections {
		conns = append(conns, name)
	}
	slices.Sort(conns)

	writeJSON(w, http.StatusOK, meResponse{
		User:        res.Data.User,
		SID:         res.Data.Internal.SID,
		ExpiresAt:   res.ExpiresAt,
		Connections: conns,
	})
}

func (d *demo) connect(w http.ResponseWriter, r *http.Request) {
	accessToken, err := randomToken()
	if err != nil {
		d.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	cookies, err := d.sessions.SetConnectionTokenSet(r.Context(), cookie.FromRequest(r), session.ConnectionTokenSet{
		Connection:  chi.URLParam(r, "connection"),
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(time.Hour),
	})
	switch {
	case errors.Is(err, session.ErrNoSession):
		d.fail(w, r, http.StatusUnauthorized, err)
		return
	case errors.Is(err, session.ErrTooManyConnections):
		d.fail(w, r, http.StatusConflict, err)
		return
	case err != nil:
		d.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	cookie.Write(w, cookies...)
	w.WriteHeader(http.StatusNoContent)
}

func (d *demo) logout(w http.ResponseWriter, r *http.Request) {
	cookie.Write(w, d.sessions.Delete(cookie.FromRequest(r))...)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (d *demo) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	d.log.WarnContext(r.Context(), "demo request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		logger.Error(err),
	)
	http.Error(w, http.StatusText(status), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// safeReturnTo accepts only local absolute paths.
func safeReturnTo(s string) string {
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") {
		return ""
	}
	return s
}

func randomToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
