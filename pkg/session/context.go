package session

import "context"

type sessionContextKey struct{}

// WithResult adds a loaded session to the context
func WithResult(ctx context.Context, res *Result) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, res)
}

// FromContext retrieves the session loaded by Middleware
func FromContext(ctx context.Context) (*Result, bool) {
	res, ok := ctx.Value(sessionContextKey{}).(*Result)
	return res, ok && res != nil
}

// MustFromContext retrieves the session from the context or panics
func MustFromContext(ctx context.Context) *Result {
	res, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return res
}

// UserFromContext returns the user of the session in context
func UserFromContext(ctx context.Context) (User, bool) {
	res, ok := FromContext(ctx)
	if !ok {
		return User{}, false
	}
	return res.Data.User, true
}
