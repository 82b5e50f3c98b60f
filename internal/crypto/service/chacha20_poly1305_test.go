package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChaCha20Poly1305(t *testing.T) {
	t.Run("valid 256-bit key", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewChaCha20Poly1305(key)
		assert.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("invalid key size", func(t *testing.T) {
		key := make([]byte, 16)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewChaCha20Poly1305(key)
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})
}

func TestChaCha20Poly1305Cipher_EncryptDecrypt(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewChaCha20Poly1305(key)
	require.NoError(t, err)

	t.Run("round trip with AAD", func(t *testing.T) {
		plaintext := []byte("12.345.678/0001-90")
		aad := []byte("key-2025")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
		require.NoError(t, err)
		assert.Equal(t, 12, len(nonce))
		assert.NotEqual(t, plaintext, ciphertext)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(plaintext, decrypted))
	})

	t.Run("nonce is unique for each encryption", func(t *testing.T) {
		plaintext := []byte("same value")

		_, nonce1, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)

		_, nonce2, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)

		assert.NotEqual(t, nonce1, nonce2)
	})

	t.Run("decrypt with wrong AAD fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("value"), []byte("key-a"))
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, []byte("key-b"))
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("decrypt with tampered ciphertext fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("value"), nil)
		require.NoError(t, err)

		ciphertext[len(ciphertext)-1] ^= 0x01

		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})
}
