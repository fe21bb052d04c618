package mock

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"golang.org/x/oauth2"
)

func TestMockProvider_Defaults(t *testing.T) {
	ctx := context.Background()
	m := NewMockProvider()

	if m.Name() != "mock" {
		t.Errorf("Name() = %q, want %q", m.Name(), "mock")
	}
	if got := m.DefaultScopes(); len(got) != 1 || got[0] != "profile" {
		t.Errorf("DefaultScopes() = %v, want [profile]", got)
	}

	authURL, err := url.Parse(m.AuthorizationURL("st", "cc", "S256", []string{"profile", "postal_code"}))
	if err != nil {
		t.Fatalf("AuthorizationURL() returned invalid URL: %v", err)
	}
	q := authURL.Query()
	if q.Get("state") != "st" || q.Get("scope") != "profile postal_code" || q.Get("code_challenge_method") != "S256" {
		t.Errorf("AuthorizationURL() query = %v", q)
	}

	token, err := m.ExchangeCode(ctx, "code", "verifier")
	if err != nil || token.AccessToken != "mock-access-token" {
		t.Errorf("ExchangeCode() = (%v, %v)", token, err)
	}

	info, err := m.ValidateToken(ctx, token.AccessToken)
	if err != nil || info.ID != "mock-user-123" {
		t.Errorf("ValidateToken() = (%v, %v)", info, err)
	}

	refreshed, err := m.RefreshToken(ctx, "rt")
	if err != nil || refreshed.RefreshToken != "rt" {
		t.Errorf("RefreshToken() = (%v, %v)", refreshed, err)
	}

	if err := m.RevokeToken(ctx, "t"); err != nil {
		t.Errorf("RevokeToken() error = %v", err)
	}
	if err := m.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestMockProvider_CustomFuncs(t *testing.T) {
	wantErr := errors.New("boom")
	m := NewMockProvider()
	m.ExchangeCodeFunc = func(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error) {
		if codeVerifier == "" {
			return nil, wantErr
		}
		return &oauth2.Token{AccessToken: code}, nil
	}
	m.HealthCheckFunc = func(ctx context.Context) error {
		return wantErr
	}

	if _, err := m.ExchangeCode(context.Background(), "c", ""); !errors.Is(err, wantErr) {
		t.Errorf("ExchangeCode() error = %v, want %v", err, wantErr)
	}
	if err := m.HealthCheck(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("HealthCheck() error = %v, want %v", err, wantErr)
	}
}

func TestMockProvider_NilFuncs(t *testing.T) {
	ctx := context.Background()
	m := &MockProvider{}

	if m.Name() != "mock" {
		t.Errorf("Name() = %q, want mock", m.Name())
	}
	if m.DefaultScopes() != nil {
		t.Error("DefaultScopes() should be nil")
	}
	if _, err := m.ExchangeCode(ctx, "c", "v"); err == nil {
		t.Error("ExchangeCode() should fail without ExchangeCodeFunc")
	}
	if _, err := m.ValidateToken(ctx, "t"); err == nil {
		t.Error("ValidateToken() should fail without ValidateTokenFunc")
	}
	if _, err := m.RefreshToken(ctx, "r"); err == nil {
		t.Error("RefreshToken() should fail without RefreshTokenFunc")
	}
	if err := m.RevokeToken(ctx, "t"); err == nil {
		t.Error("RevokeToken() should fail without RevokeTokenFunc")
	}
	if m.GetCallCount("ExchangeCode") != 1 {
		t.Errorf("GetCallCount(ExchangeCode) = %d, want 1", m.GetCallCount("ExchangeCode"))
	}
}

func TestMockProvider_CallCounts(t *testing.T) {
	m := NewMockProvider()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.ValidateToken(context.Background(), "t")
		}()
	}
	wg.Wait()

	if got := m.GetCallCount("ValidateToken"); got != 20 {
		t.Errorf("GetCallCount(ValidateToken) = %d, want 20", got)
	}

	m.ResetCallCounts()
	if got := m.GetCallCount("ValidateToken"); got != 0 {
		t.Errorf("GetCallCount() after reset = %d, want 0", got)
	}
}

func TestResourceOwner(t *testing.T) {
	raw := map[string]any{"data": []any{}}
	owner := &ResourceOwner{IDValue: "42", NameValue: "Jane Doe", Raw: raw}

	if id, ok := owner.ID(); !ok || id != "42" {
		t.Errorf("ID() = (%q, %v), want (42, true)", id, ok)
	}
	if owner.Name() != "Jane Doe" {
		t.Errorf("Name() = %q", owner.Name())
	}
	if _, ok := owner.Username(); ok {
		t.Error("Username() should be absent")
	}
	if _, ok := owner.Location(); ok {
		t.Error("Location() should be absent")
	}
	if owner.ToMap()["data"] == nil {
		t.Error("ToMap() should return the raw map")
	}
}
