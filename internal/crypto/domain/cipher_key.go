package domain

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// CipherKey is a named 32-byte symmetric key for protected attribute encryption.
type CipherKey struct {
	ID  string
	Key []byte
}

// CipherKeyChain holds the process-wide encryption keys with exactly one
// designated as active.
//
// New ciphertext is always produced under the active key. Historical keys stay
// in the chain so blobs written before a rotation remain decryptable; the blob
// header records which key encrypted it. The chain is immutable after load,
// which keeps decryption safe under arbitrary read concurrency.
type CipherKeyChain struct {
	activeID string
	keys     sync.Map
}

// NewCipherKeyChain builds a key chain from the given keys.
//
// Every key must be exactly 32 bytes, IDs must be unique, and activeID must
// reference one of the keys. The input key slices are copied; callers should
// zero their own copies after the call.
func NewCipherKeyChain(activeID string, keys []CipherKey) (*CipherKeyChain, error) {
	if activeID == "" {
		return nil, ErrActiveKeyIDNotSet
	}

	chain := &CipherKeyChain{activeID: activeID}

	for _, k := range keys {
		if len(k.Key) != 32 {
			chain.Close()
			return nil, fmt.Errorf("%w: key %s must be 32 bytes, got %d", ErrInvalidKeySize, k.ID, len(k.Key))
		}
		if _, exists := chain.keys.Load(k.ID); exists {
			chain.Close()
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKeyID, k.ID)
		}

		material := make([]byte, len(k.Key))
		copy(material, k.Key)
		chain.keys.Store(k.ID, &CipherKey{ID: k.ID, Key: material})
	}

	if _, ok := chain.Get(activeID); !ok {
		chain.Close()
		return nil, fmt.Errorf("%w: %s", ErrActiveKeyNotFound, activeID)
	}

	return chain, nil
}

// ActiveKeyID returns the ID of the key used to encrypt new data.
func (c *CipherKeyChain) ActiveKeyID() string {
	return c.activeID
}

// Get retrieves a key from the chain by its ID.
func (c *CipherKeyChain) Get(id string) (*CipherKey, bool) {
	if key, ok := c.keys.Load(id); ok {
		return key.(*CipherKey), true
	}
	return nil, false
}

// Close zeroes all key material and empties the chain. Call on shutdown.
func (c *CipherKeyChain) Close() {
	c.keys.Range(func(id, value any) bool {
		Zero(value.(*CipherKey).Key)
		return true
	})
	c.activeID = ""
	c.keys.Clear()
}

// ParseKeyEntries parses the "id:base64value,id:base64value" format used by
// the ENCRYPTION_KEYS environment variable. Values are returned still encoded;
// the caller decodes (and, when a KMS is configured, unwraps) them.
func ParseKeyEntries(raw string) (map[string]string, error) {
	entries := make(map[string]string)

	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || p[0] == "" || p[1] == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeysFormat, part)
		}
		if _, exists := entries[p[0]]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKeyID, p[0])
		}
		entries[p[0]] = p[1]
	}

	return entries, nil
}

// EncryptionKeysFromEnv reads the raw key configuration from the environment.
// This is the explicit startup-time dependency of the cipher engine: when the
// variables are absent the process fails fast instead of generating a key.
func EncryptionKeysFromEnv() (raw string, activeID string, err error) {
	raw = os.Getenv("ENCRYPTION_KEYS")
	if raw == "" {
		return "", "", ErrEncryptionKeysNotSet
	}

	activeID = os.Getenv("ACTIVE_ENCRYPTION_KEY_ID")
	if activeID == "" {
		return "", "", ErrActiveKeyIDNotSet
	}

	return raw, activeID, nil
}
