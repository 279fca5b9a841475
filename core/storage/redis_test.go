package storage_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"wallet-state/core/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRedisClient(t *testing.T) {
	_, err := storage.NewRedisClient(storage.RedisConfig{})
	assert.Error(t, err)

	client, err := storage.NewRedisClient(storage.RedisConfig{Addrs: []string{"localhost:6379"}})
	require.NoError(t, err)
	assert.NotNil(t, client)
	_ = client.Close()
}

// TestRedis_Integration needs a reachable server in REDIS_ADDR.
func TestRedis_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := storage.NewRedisClient(storage.RedisConfig{Addrs: strings.Split(addr, ",")})
	require.NoError(t, err)
	defer client.Close()

	prefix := "test-" + uuid.NewString()
	channel := prefix + ":events"
	a := storage.NewRedis(client, prefix, channel, zap.NewNop())
	b := storage.NewRedis(client, prefix, channel, zap.NewNop())

	received := make(chan storage.Message, 1)
	unsubscribe := b.Subscribe("k", func(m storage.Message) { received <- m })
	defer unsubscribe()

	// Let the subscription reach the server before publishing
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, a.SetItem(ctx, "k", "v"))
	v, err := b.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	select {
	case m := <-received:
		assert.Equal(t, storage.MessageSet, m.Kind)
		assert.Equal(t, "v", m.Value)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification received")
	}

	require.NoError(t, a.RemoveItem(ctx, "k"))
	_, err = b.GetItem(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
