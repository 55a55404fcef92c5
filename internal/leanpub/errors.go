package leanpub

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingAPIKey is returned when no Leanpub API key is provided.
	ErrMissingAPIKey = errors.New("leanpub api key is required")

	// ErrMissingBookSlug is returned when no book slug is provided.
	ErrMissingBookSlug = errors.New("leanpub book slug is required")
)

// ConfigurationError reports a required input that is missing or empty.
// It is always detected before any network call.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// TransportError wraps a failure to complete the HTTP exchange: DNS,
// connection refused, timeout, cancellation or an unreadable body.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the underlying failure was a timeout.
func (e *TransportError) Timeout() bool {
	var netErr net.Error
	if errors.As(e.Err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// RemoteError is returned when Leanpub answered with a 4xx or 5xx status.
type RemoteError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("leanpub returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("leanpub returned status %d: %s", e.StatusCode, body)
}

// Unauthorized reports whether Leanpub rejected the API key.
func (e *RemoteError) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
