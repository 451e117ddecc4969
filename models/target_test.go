package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripleComponents(t *testing.T) {
	tests := []struct {
		name   string
		triple Triple
		arch   string
		vendor string
		os     string
		abi    string
	}{
		{
			name:   "linux gnu triple",
			triple: "x86_64-unknown-linux-gnu",
			arch:   "x86_64",
			vendor: "unknown",
			os:     "linux",
			abi:    "gnu",
		},
		{
			name:   "windows gnu triple",
			triple: "x86_64-pc-windows-gnu",
			arch:   "x86_64",
			vendor: "pc",
			os:     "windows",
			abi:    "gnu",
		},
		{
			name:   "darwin triple without abi",
			triple: "aarch64-apple-darwin",
			arch:   "aarch64",
			vendor: "apple",
			os:     "darwin",
			abi:    "",
		},
		{
			name:   "two component identifier",
			triple: "wasm32-wasi",
			arch:   "wasm32",
			vendor: "wasi",
			os:     "",
			abi:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.arch, tt.triple.Arch())
			assert.Equal(t, tt.vendor, tt.triple.Vendor())
			assert.Equal(t, tt.os, tt.triple.OS())
			assert.Equal(t, tt.abi, tt.triple.ABI())
		})
	}
}

func TestParseTriples(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Triple
	}{
		{
			name:  "single triple",
			input: "x86_64-unknown-linux-gnu",
			expected: []Triple{
				"x86_64-unknown-linux-gnu",
			},
		},
		{
			name:  "multiple triples with spaces",
			input: "x86_64-unknown-linux-gnu, x86_64-pc-windows-gnu",
			expected: []Triple{
				"x86_64-unknown-linux-gnu",
				"x86_64-pc-windows-gnu",
			},
		},
		{
			name:  "trailing comma and empty elements",
			input: "x86_64-apple-darwin,,aarch64-apple-darwin,",
			expected: []Triple{
				"x86_64-apple-darwin",
				"aarch64-apple-darwin",
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTriples(tt.input))
		})
	}
}
