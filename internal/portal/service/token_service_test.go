package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Generate(t *testing.T) {
	s := NewTokenService()

	t.Run("token decodes to 32 random bytes", func(t *testing.T) {
		plain, hash, err := s.Generate()
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(plain)
		require.NoError(t, err)
		assert.Len(t, raw, 32)
		assert.Len(t, hash, 64)
		assert.Equal(t, s.Hash(plain), hash)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			plain, _, err := s.Generate()
			require.NoError(t, err)
			assert.False(t, seen[plain])
			seen[plain] = true
		}
	})
}

func TestTokenService_Hash(t *testing.T) {
	s := NewTokenService()

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, s.Hash("abc"), s.Hash("abc"))
	})

	t.Run("differs per token", func(t *testing.T) {
		assert.NotEqual(t, s.Hash("abc"), s.Hash("abd"))
	})

	t.Run("does not contain the plain token", func(t *testing.T) {
		plain, hash, err := s.Generate()
		require.NoError(t, err)
		assert.NotContains(t, hash, plain)
	})
}

func TestTokenService_Prefix(t *testing.T) {
	s := NewTokenService()

	_, hash, err := s.Generate()
	require.NoError(t, err)

	prefix := s.Prefix(hash)
	assert.Len(t, prefix, 8)
	assert.Equal(t, hash[:8], prefix)

	assert.Equal(t, "ab", s.Prefix("ab"))
}

func TestHashEqual(t *testing.T) {
	s := NewTokenService()

	h := s.Hash("token")
	assert.True(t, HashEqual(h, s.Hash("token")))
	assert.False(t, HashEqual(h, s.Hash("other")))
}
