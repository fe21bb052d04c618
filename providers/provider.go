// Package providers defines the interface for OAuth identity providers and the
// shared building blocks provider implementations are assembled from.
package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// PKCE code challenge methods (RFC 7636)
const (
	PKCEMethodS256  = "S256"
	PKCEMethodPlain = "plain"
)

// Provider defines the interface for OAuth identity providers.
// The OAuth2 flow itself (redirects, token parsing, refresh) is driven by
// golang.org/x/oauth2; a Provider supplies the provider-specific parts.
type Provider interface {
	// Name returns the provider name (e.g., "amazon")
	Name() string

	// DefaultScopes returns the scopes requested when the caller specifies none
	DefaultScopes() []string

	// AuthorizationURL generates the URL to redirect users for authentication.
	// codeChallenge and codeChallengeMethod are for PKCE (pass empty strings to disable).
	// If scopes is empty, the provider's default scopes are used.
	AuthorizationURL(state string, codeChallenge string, codeChallengeMethod string, scopes []string) string

	// ExchangeCode exchanges an authorization code for tokens
	// codeVerifier is for PKCE verification (pass empty string if not using PKCE)
	ExchangeCode(ctx context.Context, code string, codeVerifier string) (*oauth2.Token, error)

	// ValidateToken validates an access token and returns user information
	ValidateToken(ctx context.Context, accessToken string) (*UserInfo, error)

	// RefreshToken refreshes an expired token using a refresh token
	RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)

	// RevokeToken revokes a token at the provider
	RevokeToken(ctx context.Context, token string) error

	// HealthCheck verifies that the provider is reachable and functioning correctly.
	// Returns nil if the provider is healthy, or an error describing the issue.
	HealthCheck(ctx context.Context) error
}

// ResourceOwner is a normalized, read-only view of the authenticated user's
// profile as returned by a provider. Accessors that return a bool report
// whether the provider supplied the value at all.
type ResourceOwner interface {
	// ID returns the provider's unique identifier for the user
	ID() (string, bool)

	// Name returns the user's display name, or "" when unknown
	Name() string

	// Username returns the user's handle, if the provider exposes one
	Username() (string, bool)

	// Location returns the user's location, if the provider exposes one
	Location() (string, bool)

	// ToMap returns the raw profile response for fields not covered above
	ToMap() map[string]any
}

// UserInfo represents user information from a provider
type UserInfo struct {
	// ID is the unique user identifier from the provider
	ID string

	// Email is the user's email address
	Email string

	// EmailVerified indicates if the email is verified
	EmailVerified bool

	// Name is the user's full name
	Name string

	// GivenName is the user's first name
	GivenName string

	// FamilyName is the user's last name
	FamilyName string

	// Picture is the URL of the user's profile picture
	Picture string

	// Locale is the user's preferred locale
	Locale string
}
