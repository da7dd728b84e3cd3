package ondilo

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the Ondilo client.
// All errors are defined here for easy discovery and consistent organization.
var (
	// Authentication errors
	ErrNotAuthenticated = errors.New("ondilo: no token set (complete the authorization flow or supply a saved token)")
	ErrNoRefreshToken   = errors.New("ondilo: no refresh token available")

	// Authorization-code flow errors
	ErrMissingAuthorizationCode = errors.New("ondilo: authorization code is required")
	ErrStateMismatch            = errors.New("ondilo: state parameter does not match the authorization request")

	// Resource errors
	ErrNotFound = errors.New("ondilo: resource not found")
)

// APIError represents a non-2xx response from the Ondilo customer API.
// Message carries the raw response body; the caller decides whether the
// status is worth retrying.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("ondilo: API error %d: %s", e.StatusCode, e.Message)
}

// AuthError represents a rejection from the OAuth2 token endpoint (bad
// authorization code, expired or revoked refresh token). It is terminal:
// the caller must restart the flow from AuthorizationURL.
type AuthError struct {
	StatusCode  int
	Code        string // OAuth error code, e.g. "invalid_grant"
	Description string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("ondilo: auth error %s: %s", e.Code, e.Description)
	}
	if e.Code != "" {
		return fmt.Sprintf("ondilo: auth error %s", e.Code)
	}
	return fmt.Sprintf("ondilo: auth error (status %d)", e.StatusCode)
}

// IsAuthError returns true if the error is a token-endpoint rejection.
// When it returns true the stored grant is unusable and the user must
// re-authorize.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsUnauthorized returns true if the error indicates an authentication
// failure on a resource call.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsNotFound returns true if the error indicates the resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsTimeout returns true if the error indicates a timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
