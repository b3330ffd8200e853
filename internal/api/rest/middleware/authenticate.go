package middleware

import (
	"net/http"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// Authenticate is a round tripper that attaches the bearer token carried by
// the request context to outgoing requests.
type Authenticate struct {
	next           http.RoundTripper
	contextManager model.ContextManager
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(next http.RoundTripper, contextManager model.ContextManager) *Authenticate {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Authenticate{next: next, contextManager: contextManager}
}

// RoundTrip sets the Authorization header when the context carries a token.
// Requests without a token are sent unchanged.
func (m *Authenticate) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := m.contextManager.GetTokenFromContext(req.Context())
	if !ok {
		return m.next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)

	return m.next.RoundTrip(out)
}
