// Package service implements portal token generation and hashing.
package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the entropy of a portal token before encoding.
const tokenBytes = 32

// prefixLen is how many hex characters of the token hash are kept for
// logging and audit correlation. The prefix alone cannot be replayed.
const prefixLen = 8

// TokenService generates and hashes portal access tokens. Plain tokens are
// never persisted; storage and lookups work on the SHA-256 hash only.
type TokenService interface {
	Generate() (plain string, hash string, err error)
	Hash(plain string) string
	Prefix(hash string) string
}

type tokenService struct{}

// NewTokenService creates a new TokenService.
func NewTokenService() TokenService {
	return &tokenService{}
}

// Generate returns a fresh random token in URL-safe base64 together with its
// storage hash.
func (s *tokenService) Generate() (string, string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate portal token: %w", err)
	}

	plain := base64.RawURLEncoding.EncodeToString(buf)
	return plain, s.Hash(plain), nil
}

// Hash returns the hex-encoded SHA-256 digest of a plain token.
func (s *tokenService) Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Prefix returns the short hash prefix safe to write to logs and audit rows.
func (s *tokenService) Prefix(hash string) string {
	if len(hash) < prefixLen {
		return hash
	}
	return hash[:prefixLen]
}

// HashEqual compares two token hashes in constant time.
func HashEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
