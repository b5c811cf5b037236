package cache_test

import (
	"context"
	"testing"
	"time"

	"carconnect/internal/adapters/cache"
	"carconnect/internal/adapters/cache/cachetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	server := cachetest.NewServer()
	store := cache.NewRedisStoreFromClient(server.Client())
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Set(ctx, "k", []item{{ID: 1, Name: "a"}}, 0))
	assert.Equal(t, 1, server.Keys())

	var got []item
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []item{{ID: 1, Name: "a"}}, got)

	require.NoError(t, store.Delete(ctx, "k", "missing"))
	found, err = store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, server.Keys())

	// Deleting nothing is a no-op
	require.NoError(t, store.Delete(ctx))
}

func TestRedisStore_KeysArePrefixed(t *testing.T) {
	ctx := context.Background()
	server := cachetest.NewServer()
	client := server.Client()
	store := cache.NewRedisStoreFromClient(client)

	require.NoError(t, store.Set(ctx, "vehicles", item{ID: 3}, 0))

	raw, err := client.Get(ctx, "carconnect:vehicles").Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":""}`, raw)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	server := cachetest.NewServer()
	store := cache.NewRedisStoreFromClient(server.Client())

	require.NoError(t, store.Set(ctx, "k", item{ID: 2}, time.Minute))

	var got item
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint(2), got.ID)

	server.Advance(2 * time.Minute)
	found, err = store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_UndecodableValue(t *testing.T) {
	ctx := context.Background()
	server := cachetest.NewServer()
	client := server.Client()
	store := cache.NewRedisStoreFromClient(client)

	require.NoError(t, client.Set(ctx, "carconnect:k", "not json", 0).Err())

	var got item
	found, err := store.Get(ctx, "k", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestNew_WithoutURLIsNoop(t *testing.T) {
	store := cache.New(context.Background(), "")

	_, ok := store.(cache.NoopStore)
	assert.True(t, ok)

	var got item
	found, err := store.Get(context.Background(), "k", &got)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, store.Set(context.Background(), "k", got, time.Minute))
	assert.NoError(t, store.Delete(context.Background(), "k"))
}

func TestNew_BadURLFallsBack(t *testing.T) {
	store := cache.New(context.Background(), "not-a-url")

	_, ok := store.(cache.NoopStore)
	assert.True(t, ok)
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	_, err := cache.NewRedisStore(context.Background(), "http://localhost")
	assert.ErrorContains(t, err, "invalid redis url")
}
