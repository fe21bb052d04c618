package providers

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateScopes validates OAuth scopes.
//
// Security Considerations:
//   - Array Size Limit: Prevents DoS from excessive scopes
//   - String Length Limit: Prevents memory exhaustion
//   - Empty Scope Detection: Prevents malformed requests
//   - Separator Detection: A scope containing the separator would be split by the provider
//
// Example:
//
//	scopes := []string{"profile", "postal_code"}
//	if err := ValidateScopes(scopes, " "); err != nil {
//	    return fmt.Errorf("invalid scopes: %w", err)
//	}
func ValidateScopes(scopes []string, separator string) error {
	if len(scopes) > 50 {
		return fmt.Errorf("too many scopes (max 50, got %d)", len(scopes))
	}

	for i, scope := range scopes {
		if scope == "" {
			return fmt.Errorf("scope at index %d is empty", i)
		}
		if len(scope) > 256 {
			return fmt.Errorf("scope at index %d exceeds maximum length of 256 characters", i)
		}
		if separator != "" && strings.Contains(scope, separator) {
			return fmt.Errorf("scope at index %d contains the scope separator %q", i, separator)
		}
	}

	return nil
}

// ValidateEndpointURL validates an overridden provider endpoint URL.
// Endpoints must be absolute HTTPS URLs with a hostname and must not carry
// credentials, query or fragment.
//
// Unlike issuer validation, private and loopback addresses are allowed: the
// endpoint is operator configuration, not user input.
func ValidateEndpointURL(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}

	// SECURITY: Enforce HTTPS to prevent credential leakage
	if u.Scheme != "https" {
		return fmt.Errorf("endpoint URL must use HTTPS, got %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("endpoint URL must have a hostname")
	}
	if u.User != nil {
		return fmt.Errorf("endpoint URL must not contain credentials")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("endpoint URL must not contain a query or fragment")
	}

	return nil
}
