package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores and the API when an entity is missing.
	ErrNotFound = errors.New("not found")
	// ErrNoSession is returned when an operation needs a signed-in user.
	ErrNoSession = errors.New("no active session")
	// ErrSessionChanged marks a response discarded because the session
	// changed while the request was in flight.
	ErrSessionChanged = errors.New("session changed while request was in flight")
	// ErrForbidden is returned when the current role lacks a capability.
	ErrForbidden = errors.New("forbidden")
)

// AuthError covers invalid credentials and missing or expired sessions.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message == "" && e.Err != nil {
		return "auth: " + e.Err.Error()
	}
	return "auth: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError wraps err as an AuthError with its message.
func NewAuthError(err error) *AuthError {
	return &AuthError{Message: err.Error(), Err: err}
}

// ValidationError covers input rejected by the client or the server.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return "validation: " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConflictError is returned for concurrent mutations of the same entity.
type ConflictError struct {
	RecipeID int64
	Message  string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return "conflict: " + e.Message
	}
	return fmt.Sprintf("conflict: recipe %d already has a request in flight", e.RecipeID)
}

// SyncError is returned when the server rejects an optimistic mutation. The
// local state has already been rolled back when it is returned.
type SyncError struct {
	RecipeID int64
	Err      error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync: recipe %d: %v", e.RecipeID, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// NetworkError is a transport failure with no response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a 5xx response.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server: status %d: %s", e.Status, e.Message)
}

// ErrorMessage extracts the user-facing message of a typed error.
func ErrorMessage(err error) string {
	var (
		authErr       *AuthError
		validationErr *ValidationError
		conflictErr   *ConflictError
		serverErr     *ServerError
	)
	switch {
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &conflictErr):
		if conflictErr.Message == "" {
			return conflictErr.Error()
		}
		return conflictErr.Message
	case errors.As(err, &serverErr):
		return serverErr.Message
	case err != nil:
		return err.Error()
	default:
		return ""
	}
}
