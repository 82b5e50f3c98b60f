package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobFileStore(t *testing.T) {
	ctx := context.Background()

	store, err := OpenFileStore(ctx, "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	t.Run("round trip", func(t *testing.T) {
		data := []byte("%PDF-1.7 peticao inicial")

		err := store.Put(ctx, "cases/abc/doc-1.pdf", data, "application/pdf")
		require.NoError(t, err)

		got, err := store.Get(ctx, "cases/abc/doc-1.pdf")
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "cases/abc/missing.pdf")
		assert.Error(t, err)
	})

	t.Run("invalid bucket url", func(t *testing.T) {
		_, err := OpenFileStore(ctx, "carrierpigeon://docs")
		assert.Error(t, err)
	})
}
