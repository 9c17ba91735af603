package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"GET", "get", true},
		{" post ", "post", true},
		{"Patch", "patch", true},
		{"trace", "trace", true},
		{"CONNECT", "connect", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeMethod(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestMethods(t *testing.T) {
	for _, m := range Methods() {
		_, ok := NormalizeMethod(m)
		assert.True(t, ok, m)
	}
	assert.Len(t, Methods(), 8)
}
