// Package id generates correlation identifiers for outbound requests.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	requestPrefix = "req"
	// Short IDs are enough to correlate client and server log lines.
	requestLength = 12
	alphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Generate creates a prefixed NanoID, e.g. "req-3f9k2m0q8z1a".
func Generate(prefix string, length int) (string, error) {
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// Request returns an ID for the X-Request-ID header.
// Entropy failures fall back to a fixed marker rather than failing the request.
func Request() string {
	id, err := Generate(requestPrefix, requestLength)
	if err != nil {
		return requestPrefix + "-unavailable"
	}
	return id
}
