// Package amazon implements the OAuth provider interface for Login with Amazon.
//
// Login with Amazon differs from OIDC providers in several ways:
//   - No OIDC discovery: Endpoints are hardcoded (not dynamically discovered)
//   - Space-separated scopes: Scopes are joined with " ", never ","
//   - Client credentials in the URI: The token endpoint expects the client ID
//     and secret as user-info credentials (HTTP Basic), not as form fields
//   - Wrapped profile: The profile endpoint returns the user as the first
//     element of a "data" array
//   - No revocation endpoint: Users revoke access from their Amazon account
//
// # Default Scopes
//
// When no custom scopes are provided, the provider requests:
//   - profile: Read the user's id and name
//
// # Errors
//
// Token and profile responses carrying an OAuth "error" field are returned as
// *providers.ProviderError with a message of the form
//
//	400 - The code is expired: invalid_grant (see: https://...)
//
// Missing profile fields are not errors: ResourceOwner accessors report them
// as absent or empty instead.
//
// # Example Usage
//
//	provider, err := amazon.NewProvider(&amazon.Config{
//	    ClientID:     os.Getenv("AMAZON_CLIENT_ID"),
//	    ClientSecret: os.Getenv("AMAZON_CLIENT_SECRET"),
//	    RedirectURL:  "http://localhost:8080/oauth/callback",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Redirect the user, then on callback:
//	token, err := provider.ExchangeCode(ctx, code, verifier)
//	owner, err := provider.FetchResourceOwner(ctx, token.AccessToken)
//	id, _ := owner.ID()
package amazon
