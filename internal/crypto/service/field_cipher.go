package service

import (
	"encoding/base64"
	"strings"

	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
)

// blobPrefix versions the on-disk blob layout. A stored value that does not
// start with it (legacy plaintext rows included) fails decryption explicitly.
const blobPrefix = "cv1"

// fieldCipher implements FieldCipher over a cipher key chain.
//
// Blob layout: "cv1:<algorithm>:<key-id>:<base64(nonce || ciphertext)>".
// The algorithm and key id travel with the blob so historical keys and a
// future algorithm migration both decrypt without table-wide metadata; the
// key id is additionally bound as AAD so a blob cannot be re-labeled to a
// different key without failing authentication.
type fieldCipher struct {
	chain       *cryptoDomain.CipherKeyChain
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewFieldCipher creates the field-level cipher engine. The key chain is the
// explicit startup-time dependency: construction fails upstream when no key
// material is configured, never by generating an ephemeral key.
func NewFieldCipher(
	chain *cryptoDomain.CipherKeyChain,
	aeadManager AEADManager,
	algorithm cryptoDomain.Algorithm,
) FieldCipher {
	return &fieldCipher{
		chain:       chain,
		aeadManager: aeadManager,
		algorithm:   algorithm,
	}
}

// EncryptString encrypts a scalar attribute value under the active key.
func (f *fieldCipher) EncryptString(plaintext string) ([]byte, error) {
	activeKey, ok := f.chain.Get(f.chain.ActiveKeyID())
	if !ok {
		return nil, cryptoDomain.ErrActiveKeyNotFound
	}

	cipher, err := f.aeadManager.CreateCipher(activeKey.Key, f.algorithm)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := cipher.Encrypt([]byte(plaintext), []byte(activeKey.ID))
	if err != nil {
		return nil, err
	}

	encoded := base64.RawStdEncoding.EncodeToString(append(nonce, ciphertext...))
	blob := strings.Join([]string{blobPrefix, string(f.algorithm), activeKey.ID, encoded}, ":")

	return []byte(blob), nil
}

// DecryptString recovers the plaintext from a storage blob.
//
// Every failure path returns the same ErrDecryptionFailed so callers cannot
// distinguish a tampered blob from a retired key or a legacy plaintext row,
// and the stored bytes are never surfaced as plaintext.
func (f *fieldCipher) DecryptString(blob []byte) (string, error) {
	parts := strings.SplitN(string(blob), ":", 4)
	if len(parts) != 4 || parts[0] != blobPrefix {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	alg, err := cryptoDomain.ParseAlgorithm(parts[1])
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	key, ok := f.chain.Get(parts[2])
	if !ok {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	payload, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	cipher, err := f.aeadManager.CreateCipher(key.Key, alg)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	if len(payload) < nonceSize {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := cipher.Decrypt(payload[nonceSize:], payload[:nonceSize], []byte(key.ID))
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// DecryptValue maps decryption failures to the explicit unreadable marker.
func (f *fieldCipher) DecryptValue(blob []byte) cryptoDomain.ProtectedValue {
	plaintext, err := f.DecryptString(blob)
	if err != nil {
		return cryptoDomain.UnreadableValue()
	}
	return cryptoDomain.NewProtectedValue(plaintext)
}

// nonceSize is shared by both supported AEAD algorithms (96-bit nonces).
const nonceSize = 12
