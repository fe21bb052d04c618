package providers

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", raw, err)
	}
	return v
}

func TestValueByKey(t *testing.T) {
	doc := `{
		"data": [
			{"id": "42", "firstName": "Jane", "tags": ["a", "b"], "empty": null},
			{"id": "43"}
		],
		"meta": {"count": 2, "0": "zero"},
		"flag": true
	}`

	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{name: "nested array field", path: "data.0.id", want: "42", wantOK: true},
		{name: "second element", path: "data.1.id", want: "43", wantOK: true},
		{name: "nested sequence", path: "data.0.tags.1", want: "b", wantOK: true},
		{name: "map field", path: "meta.count", want: float64(2), wantOK: true},
		{name: "numeric key on map", path: "meta.0", want: "zero", wantOK: true},
		{name: "top level scalar", path: "flag", want: true, wantOK: true},
		{name: "null leaf is present", path: "data.0.empty", want: nil, wantOK: true},
		{name: "index out of range", path: "data.2.id", wantOK: false},
		{name: "missing key", path: "data.0.lastName", wantOK: false},
		{name: "missing root", path: "profile.id", wantOK: false},
		{name: "key on sequence", path: "data.id", wantOK: false},
		{name: "descend into scalar", path: "flag.value", wantOK: false},
		{name: "descend into null", path: "data.0.empty.x", wantOK: false},
		{name: "negative index", path: "data.-1.id", wantOK: false},
		{name: "signed index", path: "data.+0.id", wantOK: false},
		{name: "empty segment", path: "data..id", wantOK: false},
		{name: "empty path", path: "", wantOK: false},
	}

	root := decode(t, doc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValueByKey(root, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("ValueByKey(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ValueByKey(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestValueByKey_AbsentData(t *testing.T) {
	for _, raw := range []string{`{}`, `{"data":[]}`, `{"data":null}`, `[]`, `"text"`, `null`} {
		t.Run(raw, func(t *testing.T) {
			if v, ok := ValueByKey(decode(t, raw), "data.0.id"); ok {
				t.Errorf("ValueByKey() = %v, want absent", v)
			}
		})
	}
}

func TestValueByKey_TypedContainers(t *testing.T) {
	data := map[string]any{
		"data": []map[string]string{
			{"id": "42"},
		},
		"matrix": [2][2]int{{1, 2}, {3, 4}},
	}

	if got, ok := ValueByKey(data, "data.0.id"); !ok || got != "42" {
		t.Errorf("ValueByKey(data.0.id) = (%v, %v), want (42, true)", got, ok)
	}
	if got, ok := ValueByKey(data, "matrix.1.0"); !ok || got != 3 {
		t.Errorf("ValueByKey(matrix.1.0) = (%v, %v), want (3, true)", got, ok)
	}
	if _, ok := ValueByKey(data, "data.1.id"); ok {
		t.Error("ValueByKey(data.1.id) should be absent")
	}
	if _, ok := ValueByKey(map[int]string{0: "x"}, "0"); ok {
		t.Error("ValueByKey() on non-string-keyed map should be absent")
	}
}

func TestStringByKey(t *testing.T) {
	var root any
	dec := json.NewDecoder(strings.NewReader(`{"data":[{"id":12345678901234567890,"small":42,"ratio":0.5,"ok":false,"name":"Jane","none":null}]}`))
	dec.UseNumber()
	if err := dec.Decode(&root); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"data.0.id", "12345678901234567890", true},
		{"data.0.small", "42", true},
		{"data.0.ratio", "0.5", true},
		{"data.0.ok", "false", true},
		{"data.0.name", "Jane", true},
		{"data.0.none", "", false},
		{"data.0.missing", "", false},
	}

	for _, tt := range tests {
		got, ok := StringByKey(root, tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("StringByKey(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStringify_Float(t *testing.T) {
	if got := stringify(float64(1234567)); got != "1234567" {
		t.Errorf("stringify(1234567.0) = %q, want %q", got, "1234567")
	}
}
