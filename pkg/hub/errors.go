package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents an error response from the Hub API.
type APIError struct {
	Status       int      `json:"-"            yaml:"-"`
	ErrorMessage string   `json:"errorMessage" yaml:"errorMessage"`
	ErrorCode    string   `json:"errorCode"    yaml:"errorCode"`
	Arguments    []string `json:"arguments"    yaml:"arguments"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s: %s (status: %d)", e.ErrorCode, e.ErrorMessage, e.Status)
	}

	return fmt.Sprintf("%s (status: %d)", e.ErrorMessage, e.Status)
}

// ParseAPIError builds an APIError from a response body. Bodies that are not
// the server's JSON error envelope fall back to the raw text.
func ParseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.ErrorMessage == "" {
		apiErr.ErrorMessage = strings.TrimSpace(string(body))
		if apiErr.ErrorMessage == "" {
			apiErr.ErrorMessage = http.StatusText(status)
		}
	}

	return apiErr
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrServerURLRequired   = errors.New("server URL is required")
	ErrTokenRequired       = errors.New("an API token or bearer token is required")
	ErrNoHostInURL         = errors.New("no host specified in URL")
	ErrNoMoreItems         = errors.New("no more items")
	ErrMissingLink         = errors.New("resource has no link with the requested relation")
	ErrNoVersionsLink      = errors.New("project has no versions link")
	ErrCacheDisabled       = errors.New("cache disabled")
	ErrCacheKeyNotFound    = errors.New("key not found")
	ErrCacheEntryExpired   = errors.New("entry expired")
	ErrKeyNotFoundInCaches = errors.New("key not found in any cache")
	ErrNATSConfigRequired  = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCache    = errors.New("unsupported cache type")
)

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusForbidden
	}

	return false
}
