package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"resolv", "resolve"},
		{"reslove", "resolve"},
		{"compil", "compile"},
		{"cmopile", "compile"},
		{"lst", "list"},
		{"warmpu", "warmup"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"resolution", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("list", "list"))
	assert.Equal(t, 1, levenshtein("lst", "list"))
	assert.Equal(t, 3, levenshtein("", "mcp"))
	assert.Equal(t, 2, levenshtein("reslove", "resolve"))
}

func TestRun(t *testing.T) {
	assert.Equal(t, 1, run(nil))
	assert.Equal(t, 0, run([]string{"help"}))
	assert.Equal(t, 1, run([]string{"bogus"}))
	assert.Equal(t, 0, run([]string{"list", "--help"}))
	assert.Equal(t, 1, run([]string{"list"}))
}
