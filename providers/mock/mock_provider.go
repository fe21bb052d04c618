// Package mock provides mock implementations of the provider interfaces for testing.
package mock

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth2-amazon/providers"
)

var (
	_ providers.Provider      = (*MockProvider)(nil)
	_ providers.ResourceOwner = (*ResourceOwner)(nil)
)

// MockProvider is a mock implementation of the Provider interface for testing.
// Each method delegates to the matching *Func field; a nil field makes the
// method fail (or return a safe default where it cannot fail).
type MockProvider struct {
	NameFunc             func() string
	DefaultScopesFunc    func() []string
	AuthorizationURLFunc func(state, codeChallenge, codeChallengeMethod string, scopes []string) string
	ExchangeCodeFunc     func(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error)
	ValidateTokenFunc    func(ctx context.Context, accessToken string) (*providers.UserInfo, error)
	RefreshTokenFunc     func(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	RevokeTokenFunc      func(ctx context.Context, token string) error
	HealthCheckFunc      func(ctx context.Context) error

	// CallCounts tracks how many times each method was called
	CallCounts map[string]int

	// mu protects CallCounts and the *Func fields
	mu sync.RWMutex
}

// NewMockProvider creates a new mock provider with default implementations
func NewMockProvider() *MockProvider {
	return &MockProvider{
		CallCounts: make(map[string]int),
		NameFunc: func() string {
			return "mock"
		},
		DefaultScopesFunc: func() []string {
			return []string{"profile"}
		},
		AuthorizationURLFunc: func(state, codeChallenge, codeChallengeMethod string, scopes []string) string {
			q := url.Values{"state": {state}}
			if len(scopes) > 0 {
				q.Set("scope", strings.Join(scopes, " "))
			}
			if codeChallenge != "" {
				q.Set("code_challenge", codeChallenge)
				q.Set("code_challenge_method", codeChallengeMethod)
			}
			return "https://mock.example.com/authorize?" + q.Encode()
		},
		ExchangeCodeFunc: func(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error) {
			return &oauth2.Token{
				AccessToken:  "mock-access-token",
				TokenType:    "Bearer",
				RefreshToken: "mock-refresh-token",
			}, nil
		},
		ValidateTokenFunc: func(ctx context.Context, accessToken string) (*providers.UserInfo, error) {
			return &providers.UserInfo{
				ID:         "mock-user-123",
				Name:       "Mock User",
				GivenName:  "Mock",
				FamilyName: "User",
			}, nil
		},
		RefreshTokenFunc: func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
			return &oauth2.Token{
				AccessToken:  "new-mock-access-token",
				TokenType:    "Bearer",
				RefreshToken: refreshToken,
			}, nil
		},
		RevokeTokenFunc: func(ctx context.Context, token string) error {
			return nil
		},
		HealthCheckFunc: func(ctx context.Context) error {
			return nil
		},
	}
}

// record counts a call to method and returns fn read under the lock.
// The lock is released before fn runs so that fn may call other mock methods.
func record[F any](m *MockProvider, method string, fn *F) F {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CallCounts == nil {
		m.CallCounts = make(map[string]int)
	}
	m.CallCounts[method]++
	return *fn
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	if fn := record(m, "Name", &m.NameFunc); fn != nil {
		return fn()
	}
	return "mock"
}

// DefaultScopes returns the scopes used when none are requested
func (m *MockProvider) DefaultScopes() []string {
	if fn := record(m, "DefaultScopes", &m.DefaultScopesFunc); fn != nil {
		return fn()
	}
	return nil
}

// AuthorizationURL generates the URL to redirect users for authentication
func (m *MockProvider) AuthorizationURL(state, codeChallenge, codeChallengeMethod string, scopes []string) string {
	if fn := record(m, "AuthorizationURL", &m.AuthorizationURLFunc); fn != nil {
		return fn(state, codeChallenge, codeChallengeMethod, scopes)
	}
	return "https://mock.example.com/authorize?state=" + url.QueryEscape(state)
}

// ExchangeCode exchanges an authorization code for tokens
func (m *MockProvider) ExchangeCode(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error) {
	if fn := record(m, "ExchangeCode", &m.ExchangeCodeFunc); fn != nil {
		return fn(ctx, code, codeVerifier)
	}
	return nil, fmt.Errorf("ExchangeCodeFunc not configured")
}

// ValidateToken validates an access token and returns user information
func (m *MockProvider) ValidateToken(ctx context.Context, accessToken string) (*providers.UserInfo, error) {
	if fn := record(m, "ValidateToken", &m.ValidateTokenFunc); fn != nil {
		return fn(ctx, accessToken)
	}
	return nil, fmt.Errorf("ValidateTokenFunc not configured")
}

// RefreshToken refreshes an expired token using a refresh token
func (m *MockProvider) RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if fn := record(m, "RefreshToken", &m.RefreshTokenFunc); fn != nil {
		return fn(ctx, refreshToken)
	}
	return nil, fmt.Errorf("RefreshTokenFunc not configured")
}

// RevokeToken revokes a token at the provider
func (m *MockProvider) RevokeToken(ctx context.Context, token string) error {
	if fn := record(m, "RevokeToken", &m.RevokeTokenFunc); fn != nil {
		return fn(ctx, token)
	}
	return fmt.Errorf("RevokeTokenFunc not configured")
}

// HealthCheck reports the provider's health
func (m *MockProvider) HealthCheck(ctx context.Context) error {
	if fn := record(m, "HealthCheck", &m.HealthCheckFunc); fn != nil {
		return fn(ctx)
	}
	return nil
}

// ResetCallCounts resets all call counters
func (m *MockProvider) ResetCallCounts() {
	m.mu.Lock()
	m.CallCounts = make(map[string]int)
	m.mu.Unlock()
}

// GetCallCount returns the number of times a method was called
func (m *MockProvider) GetCallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.CallCounts[method]
}

// ResourceOwner is a fixed providers.ResourceOwner. Empty IDValue,
// UsernameValue and LocationValue are reported as absent.
type ResourceOwner struct {
	IDValue       string
	NameValue     string
	UsernameValue string
	LocationValue string
	Raw           map[string]any
}

// ID returns IDValue
func (o *ResourceOwner) ID() (string, bool) {
	return o.IDValue, o.IDValue != ""
}

// Name returns NameValue
func (o *ResourceOwner) Name() string {
	return o.NameValue
}

// Username returns UsernameValue
func (o *ResourceOwner) Username() (string, bool) {
	return o.UsernameValue, o.UsernameValue != ""
}

// Location returns LocationValue
func (o *ResourceOwner) Location() (string, bool) {
	return o.LocationValue, o.LocationValue != ""
}

// ToMap returns Raw
func (o *ResourceOwner) ToMap() map[string]any {
	return o.Raw
}
