package model

import "net/http"

// SecurityLayer builds the HTTP transport used to reach the platform API.
type SecurityLayer interface {
	RoundTripper() (http.RoundTripper, error)
}
