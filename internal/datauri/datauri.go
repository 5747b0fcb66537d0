// Package datauri parses and builds base64 data URIs with the grammar
// data:<mime>;base64,<payload>.
package datauri

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Payload is the binary content recovered from a data URI.
type Payload struct {
	MimeType string
	Bytes    []byte
}

// Parse decodes a base64 data URI into its MIME type and raw bytes.
// Non-conforming input is rejected with an explicit error instead of
// best-effort substring splitting.
func Parse(uri string) (*Payload, error) {
	header, encoded, found := strings.Cut(uri, ",")
	if !found {
		return nil, fmt.Errorf("data URI missing ',' separator")
	}

	rest, ok := strings.CutPrefix(header, "data:")
	if !ok {
		return nil, fmt.Errorf("data URI missing 'data:' scheme")
	}

	mimeType, encoding, found := strings.Cut(rest, ";")
	if !found {
		return nil, fmt.Errorf("data URI missing ';' before encoding")
	}
	if encoding != "base64" {
		return nil, fmt.Errorf("unsupported data URI encoding: %q", encoding)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return &Payload{MimeType: mimeType, Bytes: decoded}, nil
}

// Encode builds a base64 data URI from a MIME type and raw bytes.
func Encode(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
