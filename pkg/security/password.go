package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Stored credential tokens are salt and digest concatenated in a single
// column: 16 hex characters of salt followed by 64 hex characters of
// SHA-256 digest. Rows written by earlier versions of the application use
// exactly this layout, so the lengths are fixed.
const (
	saltHexLen   = 16
	digestHexLen = sha256.Size * 2

	// TokenLen is the total length of a stored credential token.
	TokenLen = saltHexLen + digestHexLen
)

// GenerateSalt returns a hex-encoded 8-byte salt from a cryptographically
// secure source.
func GenerateSalt() (string, error) {
	raw := make([]byte, saltHexLen/2)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashPassword produces a storable token for the given plaintext: a fresh
// salt, then the hex SHA-256 digest of salt+password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password required")
	}
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return salt + digestHex(salt, password), nil
}

// VerifyPassword checks a plaintext against a stored token. Malformed
// tokens verify as false rather than failing.
func VerifyPassword(password, token string) bool {
	if password == "" || len(token) != TokenLen {
		return false
	}
	salt := token[:saltHexLen]
	computed := digestHex(salt, password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(token[saltHexLen:])) == 1
}

func digestHex(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
