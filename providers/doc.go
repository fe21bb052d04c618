// Package providers defines the OAuth provider interface and the types shared
// by provider implementations.
//
// This package contains:
//   - Provider: the interface every identity provider implements
//   - ResourceOwner: a normalized read-only view of a provider's user profile
//   - UserInfo: provider-neutral user information
//   - ProviderError: OAuth error payloads returned by a provider
//   - ValueByKey: dotted-path lookup into decoded JSON ("data.0.id")
//   - Bearer authorization and PKCE exchange helpers
//   - Scope and endpoint validation
//
// Implementations are provided in subpackages:
//   - providers/amazon: Login with Amazon
//   - providers/mock: Mock provider for testing
//
// The OAuth2 flow itself (authorization redirect, code exchange, token
// parsing, refresh) is handled by golang.org/x/oauth2; providers supply the
// endpoint configuration and provider-specific behaviour around it.
//
// Example usage:
//
//	provider, err := amazon.NewProvider(&amazon.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    RedirectURL:  "http://localhost:8080/oauth/callback",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var p providers.Provider = provider
//	info, err := p.ValidateToken(ctx, accessToken)
package providers
