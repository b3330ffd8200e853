package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// JWT implements TokenInspector for bearer tokens issued as JWTs. The
// signature is not verified: the client has no key and the server remains
// the authority. Only the expiry is read, to drop tokens that are already
// dead before any request is made.
type JWT struct {
	parser *jwt.Parser
}

// NewJWT creates a new JWT inspector.
func NewJWT() model.TokenInspector {
	return &JWT{parser: jwt.NewParser()}
}

// ExpiresAt returns the exp claim of tokenString. Opaque tokens and tokens
// without an exp claim report ok=false.
func (j *JWT) ExpiresAt(tokenString string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := j.parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
