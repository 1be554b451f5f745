package storage

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name, base, bucket, path, expected string
	}{
		{"plain", "http://localhost:9000", "company-licenses", "abc.pdf", "http://localhost:9000/company-licenses/abc.pdf"},
		{"trailing slash", "https://cdn.example.com/", "company-licenses", "abc.png", "https://cdn.example.com/company-licenses/abc.png"},
		{"escaped", "http://localhost:9000", "company-licenses", "my file.pdf", "http://localhost:9000/company-licenses/my%20file.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PublicURL(tt.base, tt.bucket, tt.path))
		})
	}
}

func TestNewMinioStorage(t *testing.T) {
	s, err := NewMinioStorage("localhost:9000", "key", "secret", false, "http://localhost:9000/", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/company-licenses/x.pdf", s.PublicURL("company-licenses", "x.pdf"))
}
