package context

import (
	"context"
)

// tokenKey is the context key under which the bearer token travels.
type tokenKey struct{}

// Manager represents a request context manager for bearer token operations.
// Services put the session token into the request context and the
// authenticating transport reads it back when the request is sent.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetTokenToContext returns a context carrying the bearer token.
// An empty token yields a context without one.
func (m *Manager) SetTokenToContext(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// GetTokenFromContext retrieves the bearer token from the context.
//
// Returns the token and a boolean indicating if a non-empty token was found.
func (m *Manager) GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
