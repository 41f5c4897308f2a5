package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// DefaultTokenSize is the number of random bytes in an issued token.
const DefaultTokenSize = 32

// TokenCodec issues opaque single-purpose tokens and derives the fingerprints that are
// persisted in their place. Tokens carry enough entropy that a fast digest suffices.
type TokenCodec struct {
	size int
	key  []byte
}

// NewTokenCodec creates a codec. With an empty key the fingerprint is plain SHA-256,
// otherwise HMAC-SHA256 keyed by key.
func NewTokenCodec(size int, key string) *TokenCodec {
	if size <= 0 {
		size = DefaultTokenSize
	}
	return &TokenCodec{size: size, key: []byte(key)}
}

// Generate returns a new hex encoded random token.
func (c *TokenCodec) Generate() (string, error) {
	buf := make([]byte, c.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Fingerprint returns the deterministic hex digest stored for token.
func (c *TokenCodec) Fingerprint(token string) string {
	if len(c.key) == 0 {
		sum := sha256.Sum256([]byte(token))
		return hex.EncodeToString(sum[:])
	}
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// Check reports whether token produces fingerprint.
func (c *TokenCodec) Check(token, fingerprint string) bool {
	return subtle.ConstantTimeCompare([]byte(c.Fingerprint(token)), []byte(fingerprint)) == 1
}
