package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/chunk"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Middleware loads the session into the request context and writes its
// refresh cookies. Requests without a valid session pass through; cookies of
// an expired or rejected session are cleared.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := s.serve(w, r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithResult(r.Context(), res)))
	})
}

// RequireSession is like Middleware but answers 401 without a valid session.
func (s *Store) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := s.serve(w, r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithResult(r.Context(), res)))
	})
}

func (s *Store) serve(w http.ResponseWriter, r *http.Request) (*Result, bool) {
	jar := cookie.FromRequest(r)

	res, err := s.Get(r.Context(), jar)
	if err != nil {
		if r.Context().Err() == nil && !errors.Is(err, chunk.ErrNotFound) {
			cookie.Write(w, s.Delete(jar)...)
		}
		return nil, false
	}

	cookie.Write(w, res.Refresh...)
	return res, true
}
