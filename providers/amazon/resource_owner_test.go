package amazon

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustDecode(t *testing.T, raw string) map[string]any {
	t.Helper()

	body, err := decodeBody([]byte(raw))
	if err != nil {
		t.Fatalf("decodeBody(%q) error = %v", raw, err)
	}
	return body
}

func TestResourceOwner(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantID   string
		wantIDOK bool
		wantName string
	}{
		{
			name:     "full profile",
			response: `{"data":[{"id":"42","firstName":"Jane","lastName":"Doe"}]}`,
			wantID:   "42",
			wantIDOK: true,
			wantName: "Jane Doe",
		},
		{
			name:     "first name only",
			response: `{"data":[{"firstName":"Jane"}]}`,
			wantName: "Jane",
		},
		{
			name:     "last name only",
			response: `{"data":[{"id":"7","lastName":"Doe"}]}`,
			wantID:   "7",
			wantIDOK: true,
			wantName: "Doe",
		},
		{
			name:     "empty first name",
			response: `{"data":[{"firstName":"","lastName":"Doe"}]}`,
			wantName: "Doe",
		},
		{
			name:     "null names",
			response: `{"data":[{"id":"1","firstName":null,"lastName":null}]}`,
			wantID:   "1",
			wantIDOK: true,
			wantName: "",
		},
		{
			name:     "numeric id",
			response: `{"data":[{"id":1234567890123456789}]}`,
			wantID:   "1234567890123456789",
			wantIDOK: true,
		},
		{
			name:     "empty data array",
			response: `{"data":[]}`,
		},
		{
			name:     "no data field",
			response: `{}`,
		},
		{
			name:     "data is not an array",
			response: `{"data":"unexpected"}`,
		},
		{
			name:     "only the first element is read",
			response: `{"data":[{"firstName":"First"},{"id":"2","firstName":"Second"}]}`,
			wantName: "First",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := NewResourceOwner(mustDecode(t, tt.response))

			id, ok := owner.ID()
			if ok != tt.wantIDOK || id != tt.wantID {
				t.Errorf("ID() = (%q, %v), want (%q, %v)", id, ok, tt.wantID, tt.wantIDOK)
			}
			if got := owner.Name(); got != tt.wantName {
				t.Errorf("Name() = %q, want %q", got, tt.wantName)
			}
			if username, ok := owner.Username(); ok || username != "" {
				t.Errorf("Username() = (%q, %v), want absent", username, ok)
			}
			if location, ok := owner.Location(); ok || location != "" {
				t.Errorf("Location() = (%q, %v), want absent", location, ok)
			}
		})
	}
}

func TestResourceOwner_ToMap(t *testing.T) {
	raw := `{"data":[{"id":"42","firstName":"Jane","lastName":"Doe","extra":{"nested":true}}],"meta":1}`
	response := mustDecode(t, raw)
	want := mustDecode(t, raw)

	owner := NewResourceOwner(response)

	// Exercise every accessor before comparing
	_, _ = owner.ID()
	_ = owner.Name()
	_ = owner.UserInfo()

	got := owner.ToMap()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToMap() = %v, want %v", got, want)
	}
	if reflect.ValueOf(got).Pointer() != reflect.ValueOf(response).Pointer() {
		t.Error("ToMap() should return the map passed to NewResourceOwner")
	}
}

func TestResourceOwner_NilResponse(t *testing.T) {
	owner := NewResourceOwner(nil)

	if id, ok := owner.ID(); ok {
		t.Errorf("ID() = %q, want absent", id)
	}
	if got := owner.Name(); got != "" {
		t.Errorf("Name() = %q, want empty", got)
	}
	if owner.ToMap() != nil {
		t.Errorf("ToMap() = %v, want nil", owner.ToMap())
	}
}

func TestResourceOwner_FloatID(t *testing.T) {
	// Maps decoded without UseNumber carry float64 numbers
	var response map[string]any
	if err := json.Unmarshal([]byte(`{"data":[{"id":42}]}`), &response); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	id, ok := NewResourceOwner(response).ID()
	if !ok || id != "42" {
		t.Errorf("ID() = (%q, %v), want (\"42\", true)", id, ok)
	}
}

func TestResourceOwner_UserInfo(t *testing.T) {
	owner := NewResourceOwner(mustDecode(t, `{"data":[{"id":"42","firstName":"Jane","lastName":"Doe"}]}`))

	info := owner.UserInfo()
	if info.ID != "42" {
		t.Errorf("ID = %q, want 42", info.ID)
	}
	if info.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", info.Name, "Jane Doe")
	}
	if info.GivenName != "Jane" || info.FamilyName != "Doe" {
		t.Errorf("GivenName, FamilyName = %q, %q, want Jane, Doe", info.GivenName, info.FamilyName)
	}
}
