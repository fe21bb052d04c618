// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for provider calls.
//
// The package does not install exporters. Applications pass their own SDK
// meter and tracer providers; when none are given, or Enabled is false,
// no-op providers are used and recording costs nothing.
//
// # Quick Start
//
//	import (
//		sdkmetric "go.opentelemetry.io/otel/sdk/metric"
//		sdktrace "go.opentelemetry.io/otel/sdk/trace"
//
//		"github.com/giantswarm/oauth2-amazon/instrumentation"
//		"github.com/giantswarm/oauth2-amazon/providers/amazon"
//	)
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-login-service",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//		MeterProvider:  sdkmetric.NewMeterProvider(...),
//		TracerProvider: sdktrace.NewTracerProvider(...),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	provider, err := amazon.NewProvider(&amazon.Config{
//		ClientID:        os.Getenv("AMAZON_CLIENT_ID"),
//		ClientSecret:    os.Getenv("AMAZON_CLIENT_SECRET"),
//		Instrumentation: inst,
//	})
//
// # Available Metrics
//
// Provider API:
//   - provider.api.calls.total{provider, operation, status} - Outbound provider calls
//   - provider.api.duration{provider, operation} - Call duration in milliseconds
//   - provider.api.errors.total{provider, operation, error_type} - Failed calls
//
// OAuth Flows:
//   - oauth.code.exchanged{provider, pkce, success} - Authorization codes exchanged
//   - oauth.token.refreshed{provider, success} - Tokens refreshed
//   - oauth.profile.fetched{provider, success} - Resource owner profiles fetched
//
// # Traces
//
// Each provider operation produces one span named "<provider>.<operation>"
// carrying provider.name, provider.operation and, on failure, the OAuth error
// code and description. Tokens, codes and secrets are never recorded.
package instrumentation
