package providers

import (
	"fmt"
	"net/http"
)

// OAuth error codes as returned in the "error" field of provider responses
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidGrant         = "invalid_grant"
	ErrorCodeInvalidClient        = "invalid_client"
	ErrorCodeInvalidScope         = "invalid_scope"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeUnauthorizedClient   = "unauthorized_client"
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
	ErrorCodeServerError          = "server_error"
	ErrorCodeAccessDenied         = "access_denied"
	ErrorCodeInsufficientScope    = "insufficient_scope"
)

// ProviderError is returned when a provider response carries an OAuth error
// payload. It is not retried; callers receive it unchanged and can inspect it
// with errors.As.
type ProviderError struct {
	// StatusCode is the HTTP status code of the provider response
	StatusCode int

	// Message is the human-readable message composed by the provider
	Message string

	// Code is the OAuth error code (the "error" field)
	Code string

	// Description is the "error_description" field
	Description string

	// URI is the optional "error_uri" field
	URI string

	// Response is the parsed response body as received
	Response map[string]any
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%d - %s: %s", e.StatusCode, e.Description, e.Code)
}

// Temporary reports whether the provider signalled a server-side condition
// that may succeed on a later attempt.
func (e *ProviderError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.Code == ErrorCodeServerError
}

// StringField returns body[key] rendered as a string. Missing and null
// values yield "" and false.
func StringField(body map[string]any, key string) (string, bool) {
	v, ok := body[key]
	if !ok || v == nil {
		return "", false
	}
	return stringify(v), true
}
