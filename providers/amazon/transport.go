package amazon

import (
	"net/http"
	"net/url"
)

// PrepareTokenRequest returns a copy of req whose URL carries clientID and
// clientSecret as user-info, which is how Amazon expects client credentials
// on the token endpoint. Method, headers and body are left as they are and
// req itself is not modified.
func PrepareTokenRequest(req *http.Request, clientID, clientSecret string) *http.Request {
	prepared := req.Clone(req.Context())

	u := *req.URL
	u.User = url.UserPassword(clientID, clientSecret)
	prepared.URL = &u

	return prepared
}

// tokenRequestTransport applies PrepareTokenRequest to every request sent to
// the token endpoint. Other requests pass through untouched.
type tokenRequestTransport struct {
	base         http.RoundTripper
	tokenURL     *url.URL
	clientID     string
	clientSecret string
}

// RoundTrip implements http.RoundTripper.
func (t *tokenRequestTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !sameEndpoint(req.URL, t.tokenURL) {
		return t.base.RoundTrip(req)
	}

	prepared := PrepareTokenRequest(req, t.clientID, t.clientSecret)

	// http.Client converts URL user-info to a Basic header before the
	// transport runs, so do it here for requests that arrive without one.
	if prepared.Header.Get("Authorization") == "" {
		prepared.SetBasicAuth(t.clientID, t.clientSecret)
	}

	return t.base.RoundTrip(prepared)
}

func sameEndpoint(a, b *url.URL) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host && a.Path == b.Path
}

// withTokenRequestTransport returns a shallow copy of client whose transport
// prepares token endpoint requests.
func withTokenRequestTransport(client *http.Client, tokenURL *url.URL, clientID, clientSecret string) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	wrapped := *client
	wrapped.Transport = &tokenRequestTransport{
		base:         base,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
	return &wrapped
}
