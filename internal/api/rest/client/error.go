package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// statusError is a non-2xx response before it is mapped to a domain error.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// typed maps the status to the client error taxonomy.
func (e *statusError) typed() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return &model.AuthError{Message: e.Message, Err: e}
	case e.Status == http.StatusNotFound:
		return &model.ValidationError{Message: e.Message, Err: model.ErrNotFound}
	case e.Status == http.StatusConflict:
		return &model.ConflictError{Message: e.Message}
	case e.Status >= 400 && e.Status < 500:
		return &model.ValidationError{Message: e.Message, Err: e}
	default:
		return &model.ServerError{Status: e.Status, Message: e.Message}
	}
}

// asAuthError maps every rejection to an AuthError. Transport failures are
// returned unchanged.
func asAuthError(err error) error {
	var se *statusError
	if !errors.As(err, &se) {
		return err
	}
	return &model.AuthError{Message: se.Message, Err: se}
}

// asValidationError maps 4xx rejections to a ValidationError carrying the
// server message.
func asValidationError(err error) error {
	var se *statusError
	if !errors.As(err, &se) {
		return err
	}
	if se.Status >= 400 && se.Status < 500 {
		return &model.ValidationError{Message: se.Message, Err: se}
	}
	return se.typed()
}

// messageFrom extracts a message from an error body. The server answers with
// either {"message": "..."} or plain text.
func messageFrom(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return http.StatusText(status)
	}

	if strings.HasPrefix(trimmed, "{") {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			switch {
			case payload.Message != "":
				return payload.Message
			case payload.Error != "":
				return payload.Error
			}
		}
	}

	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err == nil && s != "" {
			return s
		}
	}

	return trimmed
}
