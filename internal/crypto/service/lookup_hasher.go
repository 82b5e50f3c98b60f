package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// HMACLookupHasher derives deterministic lookup hashes for protected
// attribute values with HMAC-SHA256.
//
// The hash is stored next to the ciphertext column and carries a unique
// index, which gives equality lookup and uniqueness enforcement over
// encrypted attributes without a deterministic encryption mode. The key must
// be separate from the encryption keys so a lookup-hash leak never weakens
// the ciphertexts.
type HMACLookupHasher struct {
	key []byte
}

// NewHMACLookupHasher creates a lookup hasher. The key must be exactly 32 bytes.
func NewHMACLookupHasher(key []byte) (*HMACLookupHasher, error) {
	if len(key) != 32 {
		return nil, errors.New("lookup hash key must be exactly 32 bytes")
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &HMACLookupHasher{key: k}, nil
}

// Hash returns the hex-encoded HMAC-SHA256 of the value.
func (h *HMACLookupHasher) Hash(value string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
