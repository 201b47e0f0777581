// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Config: {
	name?: string
	count?: int & >=0
	items?: [...{id: string}]
}
`

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	values, err := DecodeMap(testSchema, "#Config", []byte(`name: "x"
count: 2
`), "test.cue")
	if err != nil {
		t.Fatalf("DecodeMap() error = %v", err)
	}
	if values["name"] != "x" {
		t.Errorf("name = %v", values["name"])
	}
	if _, ok := values["items"]; ok {
		t.Errorf("absent optional field should not be decoded: %v", values)
	}
}

func TestDecodeMap_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{name: "wrong type", data: `count: "two"`, wantPath: "count"},
		{name: "constraint", data: `count: -1`, wantPath: "count"},
		{name: "unknown field", data: `other: 1`, wantPath: "other"},
		{name: "nested list", data: `items: [{id: 3}]`, wantPath: "items[0].id"},
		{name: "syntax", data: `name: `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeMap(testSchema, "#Config", []byte(tt.data), "test.cue")
			if err == nil {
				t.Fatal("DecodeMap() should fail")
			}
			if !strings.HasPrefix(err.Error(), "test.cue") {
				t.Errorf("error should start with the file name, got %q", err.Error())
			}
			if tt.wantPath == "" {
				return
			}
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("error should be *SchemaError, got %T: %v", err, err)
			}
			if !errors.Is(err, ErrSchema) {
				t.Error("error should wrap ErrSchema")
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q should name %q", err.Error(), tt.wantPath)
			}
		})
	}
}

func TestDecodeMap_TooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("name: \"" + strings.Repeat("x", int(MaxDocumentSize)) + "\"")
	if _, err := DecodeMap(testSchema, "#Config", data, "big.cue"); err == nil {
		t.Fatal("DecodeMap() should reject oversized documents")
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{path: nil, want: ""},
		{path: []string{"profile_id"}, want: "profile_id"},
		{path: []string{"defaults", "verbose"}, want: "defaults.verbose"},
		{path: []string{"default_repositories", "0", "url"}, want: "default_repositories[0].url"},
		{path: []string{"a", "1", "b", "2"}, want: "a[1].b[2]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFormatError_NonCUE(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "f.cue") != nil {
		t.Error("FormatError(nil) should be nil")
	}
	err := FormatError(errors.New("boom"), "f.cue")
	if err == nil || err.Error() != "f.cue: boom" {
		t.Errorf("FormatError() = %v", err)
	}
}

func TestCheckSize(t *testing.T) {
	t.Parallel()

	if err := CheckSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("CheckSize() at limit error = %v", err)
	}
	err := CheckSize(make([]byte, 11), 10, "f")
	if err == nil || !strings.Contains(err.Error(), "11") {
		t.Errorf("CheckSize() over limit = %v", err)
	}
}
