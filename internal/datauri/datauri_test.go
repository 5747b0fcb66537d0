package datauri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRoundTrip encodes known bytes and recovers them exactly
func TestParseRoundTrip(t *testing.T) {
	original := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}
	uri := Encode("image/png", original)

	payload, err := Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", payload.MimeType)
	assert.Equal(t, original, payload.Bytes)
}

// TestParseMimeType recovers the literal MIME substring, case preserved
func TestParseMimeType(t *testing.T) {
	payload, err := Parse(Encode("image/JPEG", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "image/JPEG", payload.MimeType)
}

// TestParseEmptyPayload accepts a URI carrying zero bytes
func TestParseEmptyPayload(t *testing.T) {
	payload, err := Parse("data:image/png;base64,")
	require.NoError(t, err)
	assert.Empty(t, payload.Bytes)
	assert.Equal(t, "image/png", payload.MimeType)
}

// TestParseMalformed rejects non-conforming input loudly
func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"missing comma", "data:image/png;base64"},
		{"missing scheme", "image/png;base64,aGk="},
		{"missing semicolon", "data:image/png,aGk="},
		{"non-base64 encoding", "data:image/png;hex,6869"},
		{"invalid base64 payload", "data:image/png;base64,%%%"},
		{"empty string", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Parse(tc.uri)
			assert.Error(t, err)
			assert.Nil(t, payload)
		})
	}
}
