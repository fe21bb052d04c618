package amazon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth2-amazon/providers"
)

// ErrMissingUserID is returned by ValidateToken when the profile response
// carries no user id.
var ErrMissingUserID = errors.New("amazon profile response does not contain a user id")

// CheckErrorResponse inspects a parsed provider response for an OAuth error
// payload. When body has a non-null "error" field it returns a
// *providers.ProviderError whose message has the form
//
//	<status> - <error_description>: <error> (see: <error_uri>)
//
// with the "(see: ...)" clause omitted when error_uri is absent. Otherwise it
// returns nil.
func CheckErrorResponse(statusCode int, body map[string]any) error {
	code, ok := providers.StringField(body, "error")
	if !ok {
		return nil
	}

	description, _ := providers.StringField(body, "error_description")
	uri, hasURI := providers.StringField(body, "error_uri")

	message := fmt.Sprintf("%d - %s: %s", statusCode, description, code)
	if hasURI && uri != "" {
		message += " (see: " + uri + ")"
	}

	return &providers.ProviderError{
		StatusCode:  statusCode,
		Message:     message,
		Code:        code,
		Description: description,
		URI:         uri,
		Response:    body,
	}
}

// decodeBody parses a JSON object, keeping numbers as json.Number so large
// ids are not rounded through float64.
func decodeBody(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// providerErrorFromRetrieve converts a token endpoint failure reported by
// golang.org/x/oauth2 into a ProviderError. It returns nil when err is not a
// RetrieveError or its body is not an OAuth error payload.
func providerErrorFromRetrieve(err error) (*providers.ProviderError, int) {
	var rErr *oauth2.RetrieveError
	if !errors.As(err, &rErr) {
		return nil, 0
	}

	statusCode := 0
	if rErr.Response != nil {
		statusCode = rErr.Response.StatusCode
	}

	body, decodeErr := decodeBody(rErr.Body)
	if decodeErr != nil {
		return nil, statusCode
	}

	var pErr *providers.ProviderError
	if errors.As(CheckErrorResponse(statusCode, body), &pErr) {
		return pErr, statusCode
	}
	return nil, statusCode
}
