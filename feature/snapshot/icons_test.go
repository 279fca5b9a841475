package snapshot

import (
	"context"
	"testing"

	"wallet-state/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconCache(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	icons := NewIconCache(mem, testKey, nil)
	icons.Load(ctx)
	assert.Empty(t, icons.Get("polkadot:talisman"))

	require.NoError(t, icons.SetAll(ctx, map[string]string{
		"polkadot:talisman": "data:talisman",
		"polkadot:empty":    "",
	}))

	raw, err := mem.GetItem(ctx, testKey+IconKeySuffix)
	require.NoError(t, err)
	assert.JSONEq(t, `{"polkadot:talisman":"data:talisman"}`, raw)

	reloaded := NewIconCache(mem, testKey, nil)
	reloaded.Load(ctx)
	assert.Equal(t, "data:talisman", reloaded.Get("polkadot:talisman"))
}

func TestIconCache_UnchangedSkipsWrite(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	icons := NewIconCache(mem, testKey, nil)

	require.NoError(t, icons.SetAll(ctx, map[string]string{"polkadot:a": "x"}))
	require.NoError(t, mem.RemoveItem(ctx, testKey+IconKeySuffix))
	require.NoError(t, icons.SetAll(ctx, map[string]string{"polkadot:a": "x"}))

	_, err := mem.GetItem(ctx, testKey+IconKeySuffix)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIconCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.SetItem(ctx, testKey+IconKeySuffix, "not json"))

	icons := NewIconCache(mem, testKey, nil)
	icons.Load(ctx)
	assert.Empty(t, icons.Get("polkadot:a"))
}
