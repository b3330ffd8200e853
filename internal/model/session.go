package model

import (
	"errors"
	"strings"
)

// Keys under which the session is persisted in client storage.
const (
	KeyAuthToken   = "authToken"
	KeyCurrentUser = "currentUser"
)

// Profile describes the signed-in user.
type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// DisplayName returns the first name, or the username when it is empty.
func (p Profile) DisplayName() string {
	if strings.TrimSpace(p.FirstName) != "" {
		return p.FirstName
	}
	return p.Username
}

var errPartialSession = errors.New("token and profile must be set together")

// Session is the current authentication state. A token is present iff a
// profile is present; the zero value is the anonymous session.
type Session struct {
	token   string
	profile *Profile
}

// NewSession builds an authenticated session. Both parts are required.
func NewSession(token string, profile *Profile) (Session, error) {
	if token == "" || profile == nil {
		return Session{}, errPartialSession
	}
	p := *profile
	return Session{token: token, profile: &p}, nil
}

// Token returns the bearer token, empty for anonymous sessions.
func (s Session) Token() string {
	return s.token
}

// Profile returns a copy of the profile.
func (s Session) Profile() (Profile, bool) {
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

// Role returns RoleAnonymous when no profile is present.
func (s Session) Role() Role {
	if s.profile == nil {
		return RoleAnonymous
	}
	return s.profile.Role
}

// Authenticated reports whether the session carries a token and profile.
func (s Session) Authenticated() bool {
	return s.token != "" && s.profile != nil
}

// WithProfile returns a session with the same token and a replaced profile.
func (s Session) WithProfile(profile Profile) Session {
	if !s.Authenticated() {
		return s
	}
	return Session{token: s.token, profile: &profile}
}

// SessionEventKind classifies a published session change.
type SessionEventKind int

const (
	// SessionEstablished is published after sign-in or restore.
	SessionEstablished SessionEventKind = iota
	// SessionRefreshed is published when the profile changes for the same identity.
	SessionRefreshed
	// SessionCleared is published after logout.
	SessionCleared
)

// String returns a human-readable event kind.
func (k SessionEventKind) String() string {
	switch k {
	case SessionEstablished:
		return "established"
	case SessionRefreshed:
		return "refreshed"
	case SessionCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// SessionEvent is delivered to session subscribers.
type SessionEvent struct {
	Kind    SessionEventKind
	Session Session
	Epoch   uint64
}

// IdentityChanged reports whether dependents must drop per-user state.
func (e SessionEvent) IdentityChanged() bool {
	return e.Kind != SessionRefreshed
}

// SessionReader gives read access to the current session.
type SessionReader interface {
	Current() Session
	Epoch() uint64
}
