package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Session tokens are 32 random bytes, hex encoded. The token is the only
// credential a browser holds, so it has to be unguessable.
const tokenByteLen = 32

var tokenFormatRegex = regexp.MustCompile(`^[a-f0-9]{64}$`)

// GenerateSessionToken returns a new cryptographically random session token.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, tokenByteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ValidTokenFormat reports whether the string looks like a session token.
// Malformed cookies are rejected before any store lookup.
func ValidTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
