// Package service implements the cipher engine for protected attribute encryption.
// Provides AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), the field-level blob
// codec used by repositories, and key loading through an optional KMS keeper.
package service

import (
	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD cipher instances for a given key and algorithm.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// FieldCipher is the cipher engine contract used by the storage layer.
//
// EncryptString produces a self-describing blob under the chain's active key;
// DecryptString reverses it using whichever chain key the blob names. Both
// sides of the same plaintext: stored bytes are always blobs, in-memory
// values are always plaintext.
type FieldCipher interface {
	// EncryptString encrypts a scalar attribute value into a storage blob.
	// Encryption is non-deterministic: two calls with the same plaintext
	// yield different blobs.
	EncryptString(plaintext string) ([]byte, error)

	// DecryptString recovers the plaintext from a storage blob. Any failure
	// (unknown key, tampered bytes, malformed or legacy plaintext blob)
	// returns domain.ErrDecryptionFailed; the stored bytes are never
	// returned as a fallback.
	DecryptString(blob []byte) (string, error)

	// DecryptValue is the entity-load form of DecryptString: failures become
	// the explicit unreadable marker instead of an error, so one corrupt
	// attribute does not block loading the rest of the entity.
	DecryptValue(blob []byte) cryptoDomain.ProtectedValue
}

// LookupHasher computes deterministic keyed hashes of protected attribute
// values for equality lookup and uniqueness enforcement. The hash key is
// independent from the encryption keys and the hash is never used for
// decryption.
type LookupHasher interface {
	Hash(value string) string
}
