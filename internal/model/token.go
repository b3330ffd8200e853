package model

import "time"

// TokenInspector reads claims from a bearer token without verifying it.
// ok is false when the token carries no readable expiry.
type TokenInspector interface {
	ExpiresAt(token string) (expiresAt time.Time, ok bool)
}
