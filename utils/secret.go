package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecret returns a URL-safe random secret with 256 bits of entropy,
// used as the session-signing secret when none is configured.
func GenerateSecret() (string, error) {
	const numBytes = 32 // 256 bits
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
