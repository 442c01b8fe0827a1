package match

import (
	"slices"
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"EnumArg", "enumarg"},
		{"enum_arg", "enumarg"},
		{"enum-arg", "enumarg"},
		{"ENUMARG", "enumarg"},
		{"HTTPStatus", "httpstatus"},
		{"wire.Kind", "wirekind"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := NormalizeIdent(tt.input); result != tt.expected {
				t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTokenizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"EnumArg", []string{"enum", "arg"}},
		{"HTTPStatus", []string{"http", "status"}},
		{"getHTTPResponse", []string{"get", "http", "response"}},
		{"wire_kind", []string{"wire", "kind"}},
		{"example/wire.Kind", []string{"example", "wire", "kind"}},
		{"ID", []string{"id"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := TokenizeIdent(tt.input); !slices.Equal(result, tt.expected) {
				t.Errorf("TokenizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
