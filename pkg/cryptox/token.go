package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Sizes in bytes before encoding.
const (
	TokenSize128 = 16
	TokenSize256 = 32
)

// GenerateKey returns size random bytes, for HMAC secrets and the like.
func GenerateKey(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("key size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}
	return buf, nil
}

// GenerateToken returns a base64url (unpadded) random token of size bytes.
func GenerateToken(size int) (string, error) {
	buf, err := GenerateKey(size)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
