package service

import (
	"context"
	"encoding/base64"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
)

func TestLoadCipherKeyChain(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	kmsService := NewKMSService()

	encode := func(key []byte) string {
		return base64.StdEncoding.EncodeToString(key)
	}

	t.Run("loads plain base64 keys", func(t *testing.T) {
		key1 := newTestKey(t)
		key2 := newTestKey(t)
		t.Setenv("ENCRYPTION_KEYS", "key-2024:"+encode(key1)+",key-2025:"+encode(key2))
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		chain, err := LoadCipherKeyChain(ctx, kmsService, "", logger)
		require.NoError(t, err)
		defer chain.Close()

		assert.Equal(t, "key-2025", chain.ActiveKeyID())

		loaded, ok := chain.Get("key-2024")
		require.True(t, ok)
		assert.Equal(t, key1, loaded.Key)
	})

	t.Run("missing ENCRYPTION_KEYS", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEYS", "")
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		_, err := LoadCipherKeyChain(ctx, kmsService, "", logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionKeysNotSet)
	})

	t.Run("missing ACTIVE_ENCRYPTION_KEY_ID", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEYS", "key-2025:"+encode(newTestKey(t)))
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "")

		_, err := LoadCipherKeyChain(ctx, kmsService, "", logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrActiveKeyIDNotSet)
	})

	t.Run("malformed entry", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEYS", "key-without-value")
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		_, err := LoadCipherKeyChain(ctx, kmsService, "", logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeysFormat)
	})

	t.Run("invalid base64", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEYS", "key-2025:!!!not-base64!!!")
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		_, err := LoadCipherKeyChain(ctx, kmsService, "", logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyBase64)
	})

	t.Run("wrong key size", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEYS", "key-2025:"+encode([]byte("too short")))
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		_, err := LoadCipherKeyChain(ctx, kmsService, "", logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("active key not in chain", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEYS", "key-2024:"+encode(newTestKey(t)))
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		_, err := LoadCipherKeyChain(ctx, kmsService, "", logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrActiveKeyNotFound)
	})

	t.Run("unwraps KMS-wrapped keys", func(t *testing.T) {
		keyURI := generateLocalSecretsURI(t)

		keeperInterface, err := kmsService.OpenKeeper(ctx, keyURI)
		require.NoError(t, err)
		keeper, ok := keeperInterface.(*secrets.Keeper)
		require.True(t, ok)

		plainKey := newTestKey(t)
		wrapped, err := keeper.Encrypt(ctx, plainKey)
		require.NoError(t, err)
		require.NoError(t, keeperInterface.Close())

		t.Setenv("ENCRYPTION_KEYS", "key-2025:"+encode(wrapped))
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		chain, err := LoadCipherKeyChain(ctx, kmsService, keyURI, logger)
		require.NoError(t, err)
		defer chain.Close()

		loaded, ok := chain.Get("key-2025")
		require.True(t, ok)
		assert.Equal(t, plainKey, loaded.Key)
	})

	t.Run("unwrap failure aborts the load", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEYS", "key-2025:"+encode(newTestKey(t)))
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		_, err := LoadCipherKeyChain(ctx, kmsService, generateLocalSecretsURI(t), logger)
		assert.Error(t, err)
	})

	t.Run("invalid KMS URI aborts the load", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEYS", "key-2025:"+encode(newTestKey(t)))
		t.Setenv("ACTIVE_ENCRYPTION_KEY_ID", "key-2025")

		_, err := LoadCipherKeyChain(ctx, kmsService, "invalid://uri", logger)
		assert.Error(t, err)
	})
}
