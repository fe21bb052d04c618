package amazon

import (
	"github.com/giantswarm/oauth2-amazon/providers"
)

// Compile-time check that ResourceOwner implements providers.ResourceOwner.
var _ providers.ResourceOwner = (*ResourceOwner)(nil)

// Paths into the profile response. The profile endpoint wraps the user in a
// "data" array; only its first element is read.
const (
	pathID        = "data.0.id"
	pathFirstName = "data.0.firstName"
	pathLastName  = "data.0.lastName"
)

// ResourceOwner is a read-only view over an Amazon profile response.
// All accessors are pure lookups on the stored response; missing fields
// degrade to absent values instead of errors.
type ResourceOwner struct {
	response map[string]any
}

// NewResourceOwner wraps a parsed profile response. The map is stored as is
// and must not be modified by the caller afterwards.
func NewResourceOwner(response map[string]any) *ResourceOwner {
	return &ResourceOwner{response: response}
}

// ID returns the Amazon user id.
func (o *ResourceOwner) ID() (string, bool) {
	return providers.StringByKey(o.response, pathID)
}

// FirstName returns the first name, or "" when absent.
func (o *ResourceOwner) FirstName() string {
	v, _ := providers.StringByKey(o.response, pathFirstName)
	return v
}

// LastName returns the last name, or "" when absent.
func (o *ResourceOwner) LastName() string {
	v, _ := providers.StringByKey(o.response, pathLastName)
	return v
}

// Name joins first and last name with a single space when both are set,
// otherwise returns whichever one is present. It returns "" when neither is.
func (o *ResourceOwner) Name() string {
	first, last := o.FirstName(), o.LastName()
	if first != "" && last != "" {
		return first + " " + last
	}
	return first + last
}

// Username is not exposed by the Amazon profile API.
func (o *ResourceOwner) Username() (string, bool) {
	return "", false
}

// Location is not exposed by the Amazon profile API.
func (o *ResourceOwner) Location() (string, bool) {
	return "", false
}

// ToMap returns the profile response exactly as it was passed to NewResourceOwner.
func (o *ResourceOwner) ToMap() map[string]any {
	return o.response
}

// UserInfo maps the profile onto the provider-neutral user type.
func (o *ResourceOwner) UserInfo() *providers.UserInfo {
	id, _ := o.ID()
	return &providers.UserInfo{
		ID:         id,
		Name:       o.Name(),
		GivenName:  o.FirstName(),
		FamilyName: o.LastName(),
	}
}
