package amazon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/giantswarm/oauth2-amazon/instrumentation"
	"github.com/giantswarm/oauth2-amazon/providers"
)

// Compile-time check that Provider implements the providers.Provider interface.
var _ providers.Provider = (*Provider)(nil)

// providerName is the name returned by Provider.Name().
const providerName = "amazon"

// Login with Amazon endpoints
const (
	AuthURL    = "https://www.amazon.com/ap/oa"
	TokenURL   = "https://api.amazon.com/auth/o2/token"
	ProfileURL = "https://api.amazon.com/user/profile"
)

// ScopeSeparator joins scopes in authorization requests. Amazon expects a
// single space, not the comma some providers use.
const ScopeSeparator = " "

// DefaultScope grants access to the basic user profile.
const DefaultScope = "profile"

// maxResponseSize caps how much of a profile response is read.
const maxResponseSize = 1 << 20

// Endpoint is the Login with Amazon OAuth 2.0 endpoint. Client credentials
// are sent as HTTP Basic credentials, never in the request body.
var Endpoint = oauth2.Endpoint{
	AuthURL:   AuthURL,
	TokenURL:  TokenURL,
	AuthStyle: oauth2.AuthStyleInHeader,
}

// Endpoints overrides the default Login with Amazon URLs. Empty fields keep
// their defaults. Overrides must be HTTPS URLs.
type Endpoints struct {
	AuthURL    string
	TokenURL   string
	ProfileURL string
}

// Config holds Login with Amazon configuration.
type Config struct {
	// ClientID is the security profile's client ID.
	ClientID string

	// ClientSecret is the security profile's client secret.
	ClientSecret string

	// RedirectURL is the OAuth callback URL. It must be registered as an
	// allowed return URL in the security profile.
	RedirectURL string

	// Scopes are optional custom scopes (defaults to ["profile"]).
	Scopes []string

	// Endpoints optionally overrides the Amazon endpoint URLs.
	Endpoints *Endpoints

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// RequestTimeout is the timeout for Amazon API calls (default: 30s).
	RequestTimeout time.Duration

	// RequestsPerSecond throttles outbound calls to Amazon. Zero disables throttling.
	RequestsPerSecond float64

	// Burst is the throttle's bucket size (default: 1 when throttling is enabled).
	Burst int

	// Logger is used for debug and warning output (default: slog.Default()).
	Logger *slog.Logger

	// Instrumentation records spans and metrics for provider calls (default: no-op).
	Instrumentation *instrumentation.Instrumentation
}

// Provider implements the providers.Provider interface for Login with Amazon.
type Provider struct {
	*oauth2.Config
	profileURL     string
	httpClient     *http.Client
	tokenClient    *http.Client
	requestTimeout time.Duration
	limiter        *rate.Limiter
	logger         *slog.Logger
	inst           *instrumentation.Instrumentation
	tracer         trace.Tracer
}

// NewProvider creates a new Login with Amazon provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}

	// Deep copy scopes to prevent external modification
	scopesCopy := make([]string, len(scopes))
	copy(scopesCopy, scopes)
	scopes = scopesCopy

	// SECURITY: Validate scopes
	if err := providers.ValidateScopes(scopes, ScopeSeparator); err != nil {
		return nil, fmt.Errorf("invalid scopes: %w", err)
	}

	endpoint := Endpoint
	profileURL := ProfileURL
	if cfg.Endpoints != nil {
		overrides := []struct {
			name  string
			value string
			dst   *string
		}{
			{"authorization", cfg.Endpoints.AuthURL, &endpoint.AuthURL},
			{"token", cfg.Endpoints.TokenURL, &endpoint.TokenURL},
			{"profile", cfg.Endpoints.ProfileURL, &profileURL},
		}
		for _, o := range overrides {
			if o.value == "" {
				continue
			}
			if err := providers.ValidateEndpointURL(o.value); err != nil {
				return nil, fmt.Errorf("invalid %s endpoint: %w", o.name, err)
			}
			*o.dst = o.value
		}
	}

	tokenURL, err := url.Parse(endpoint.TokenURL)
	if err != nil {
		return nil, fmt.Errorf("invalid token endpoint: %w", err)
	}

	if cfg.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("requests per second must not be negative")
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	requestTimeout := cfg.RequestTimeout
	if requestTimeout == 0 {
		requestTimeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: requestTimeout,
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	inst := cfg.Instrumentation
	if inst == nil {
		inst = instrumentation.Noop()
	}

	return &Provider{
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		profileURL:     profileURL,
		httpClient:     httpClient,
		tokenClient:    withTokenRequestTransport(httpClient, tokenURL, cfg.ClientID, cfg.ClientSecret),
		requestTimeout: requestTimeout,
		limiter:        limiter,
		logger:         logger.With("provider", providerName),
		inst:           inst,
		tracer:         inst.Tracer("provider"),
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return providerName
}

// AuthorizationEndpoint returns the URL users are redirected to for consent.
func (p *Provider) AuthorizationEndpoint() string {
	return p.Endpoint.AuthURL
}

// TokenEndpoint returns the code and refresh token exchange URL. Amazon uses
// a single endpoint for every grant, so params are not consulted.
func (p *Provider) TokenEndpoint(_ url.Values) string {
	return p.Endpoint.TokenURL
}

// ProfileEndpoint returns the user profile URL. The token is not part of the
// URL; it is sent as a bearer Authorization header.
func (p *Provider) ProfileEndpoint(_ *oauth2.Token) string {
	return p.profileURL
}

// DefaultScopes returns the provider's configured default scopes.
// Returns a deep copy to prevent external modification.
func (p *Provider) DefaultScopes() []string {
	scopes := make([]string, len(p.Scopes))
	copy(scopes, p.Scopes)
	return scopes
}

// ScopeSeparator returns the delimiter used to serialize scopes.
func (p *Provider) ScopeSeparator() string {
	return ScopeSeparator
}

// JoinScopes serializes scopes for an authorization request.
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, ScopeSeparator)
}

// AuthorizationURL generates the Amazon authorization URL with optional PKCE.
// If scopes is empty, the provider's default configured scopes are used.
func (p *Provider) AuthorizationURL(state string, codeChallenge string, codeChallengeMethod string, scopes []string) string {
	if len(scopes) == 0 {
		scopes = p.Scopes
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("scope", JoinScopes(scopes)),
	}

	if codeChallenge != "" && codeChallengeMethod != "" {
		opts = append(opts,
			oauth2.SetAuthURLParam("code_challenge", codeChallenge),
			oauth2.SetAuthURLParam("code_challenge_method", codeChallengeMethod),
		)
	}

	return p.AuthCodeURL(state, opts...)
}

// ensureContextTimeout ensures the context has a deadline, adding one if needed.
// Returns a new context with timeout and a cancel function that should be deferred.
// If the context already has a deadline, returns the original context with a no-op cancel.
func (p *Provider) ensureContextTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.requestTimeout)
}

// ExchangeCode exchanges an authorization code for tokens with optional PKCE verification.
// OAuth error responses from the token endpoint are returned as *providers.ProviderError.
func (p *Provider) ExchangeCode(ctx context.Context, code string, verifier string) (*oauth2.Token, error) {
	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	ctx, c := p.startCall(ctx, "exchange_code")
	if err := p.wait(ctx); err != nil {
		c.end(0, err)
		return nil, err
	}

	token, err := providers.ExchangeCodeWithPKCE(ctx, p.Config, p.tokenClient, code, verifier)
	p.inst.Metrics().RecordCodeExchange(ctx, providerName, verifier != "", err == nil)
	if err != nil {
		status, err := tokenError("failed to exchange code", err)
		c.end(status, err)
		return nil, err
	}

	c.end(http.StatusOK, nil)
	return token, nil
}

// RefreshToken refreshes an expired token using a refresh token.
func (p *Provider) RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	ctx, c := p.startCall(ctx, "refresh_token")
	if err := p.wait(ctx); err != nil {
		c.end(0, err)
		return nil, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.tokenClient)
	token, err := p.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	p.inst.Metrics().RecordTokenRefresh(ctx, providerName, err == nil)
	if err != nil {
		status, err := tokenError("failed to refresh token", fmt.Errorf("failed to refresh token: %w", err))
		c.end(status, err)
		return nil, err
	}

	c.end(http.StatusOK, nil)
	return token, nil
}

// tokenError replaces an already wrapped token endpoint failure with the
// provider's OAuth error payload when the endpoint returned one, and reports
// the HTTP status of the failed call.
func tokenError(msg string, err error) (int, error) {
	pErr, status := providerErrorFromRetrieve(err)
	if pErr != nil {
		return status, fmt.Errorf("%s: %w", msg, pErr)
	}
	return status, err
}

// FetchResourceOwner retrieves the profile of the user the access token was
// issued to.
func (p *Provider) FetchResourceOwner(ctx context.Context, accessToken string) (*ResourceOwner, error) {
	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	ctx, c := p.startCall(ctx, "fetch_profile")
	owner, status, err := p.fetchResourceOwner(ctx, accessToken)
	p.inst.Metrics().RecordProfileFetch(ctx, providerName, err == nil)
	c.end(status, err)
	return owner, err
}

func (p *Provider) fetchResourceOwner(ctx context.Context, accessToken string) (*ResourceOwner, int, error) {
	if err := p.wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.ProfileEndpoint(nil), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	providers.SetBearerAuthorization(req, accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read profile response: %w", err)
	}

	body, decodeErr := decodeBody(data)
	if decodeErr == nil {
		if err := CheckErrorResponse(resp.StatusCode, body); err != nil {
			return nil, resp.StatusCode, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("profile request failed with status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode profile: %w", decodeErr)
	}

	return NewResourceOwner(body), resp.StatusCode, nil
}

// ValidateToken validates an access token by fetching the user's profile.
func (p *Provider) ValidateToken(ctx context.Context, accessToken string) (*providers.UserInfo, error) {
	owner, err := p.FetchResourceOwner(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	if _, ok := owner.ID(); !ok {
		return nil, ErrMissingUserID
	}

	return owner.UserInfo(), nil
}

// RevokeToken revokes a token at Amazon.
// Login with Amazon has no revocation endpoint; users remove app access from
// their Amazon account settings. Returns nil for graceful degradation.
func (p *Provider) RevokeToken(_ context.Context, _ string) error {
	return nil
}

// HealthCheck verifies that the Amazon API is reachable.
// It sends an unauthenticated request to the profile endpoint; any answer
// below 500 (Amazon replies 400 or 401) means the API is up.
//
// Security Considerations:
//   - This method is designed for server-side health monitoring
//   - DO NOT expose error details to untrusted clients
func (p *Provider) HealthCheck(ctx context.Context) error {
	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	ctx, c := p.startCall(ctx, "health_check")
	status, err := p.healthCheck(ctx)
	c.end(status, err)
	return err
}

func (p *Provider) healthCheck(ctx context.Context) (int, error) {
	if err := p.wait(ctx); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("amazon api unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode >= http.StatusInternalServerError {
		return resp.StatusCode, fmt.Errorf("amazon health check failed with status %d", resp.StatusCode)
	}

	return resp.StatusCode, nil
}

// wait blocks until the outbound throttle admits another request.
func (p *Provider) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// call tracks one outbound provider operation for tracing, metrics and logging.
type call struct {
	p         *Provider
	ctx       context.Context
	span      trace.Span
	operation string
	start     time.Time
}

func (p *Provider) startCall(ctx context.Context, operation string) (context.Context, *call) {
	ctx, span := p.tracer.Start(ctx, providerName+"."+operation)
	instrumentation.AddProviderAttributes(span, providerName, operation)
	instrumentation.AddOAuthFlowAttributes(span, p.ClientID, "", "")

	return ctx, &call{
		p:         p,
		ctx:       ctx,
		span:      span,
		operation: operation,
		start:     time.Now(),
	}
}

func (c *call) end(statusCode int, err error) {
	defer c.span.End()

	durationMs := float64(time.Since(c.start).Microseconds()) / 1000
	c.p.inst.Metrics().RecordProviderAPICall(c.ctx, providerName, c.operation, statusCode, durationMs, err)

	if err == nil {
		instrumentation.SetSpanSuccess(c.span)
		c.p.logger.Debug("Provider call succeeded",
			"operation", c.operation,
			"status", statusCode,
			"duration_ms", durationMs)
		return
	}

	var pErr *providers.ProviderError
	if errors.As(err, &pErr) {
		instrumentation.AddProviderErrorAttributes(c.span, pErr.StatusCode, pErr.Code, pErr.Description)
		c.p.logger.Warn("Provider returned an error response",
			"operation", c.operation,
			"status", pErr.StatusCode,
			"error_code", pErr.Code,
			"error_description", pErr.Description)
	} else {
		c.p.logger.Warn("Provider call failed",
			"operation", c.operation,
			"status", statusCode,
			"error", err)
	}
	instrumentation.RecordError(c.span, err)
}
