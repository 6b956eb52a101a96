package redisstore

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
	"github.com/mmynk/godutch/internal/storage/storagetest"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := New(Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestRedisStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		store, _ := setupTestRedis(t)
		return store
	})
}

func TestRedisStore_Keys(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.CreateGroup(ctx, &models.Group{Code: "KEY01", Creator: "u1", Members: []string{"u1"}}))
	require.NoError(t, store.UpdateRegistry(ctx, func(r *models.Registry) error {
		r.Groups["KEY01"] = models.GroupEntry{Creator: "u1"}
		return nil
	}))

	assert.True(t, mr.Exists("godutch:group:KEY01"))
	assert.True(t, mr.Exists("godutch:registry"))
}

func TestRedisStore_CustomPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store := NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "tenant1")
	defer store.Close()

	require.NoError(t, store.CreateGroup(context.Background(), &models.Group{Code: "PFX01"}))
	assert.True(t, mr.Exists("tenant1:group:PFX01"))
}

func TestRedisStore_Malformed(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("godutch:registry", `{"users":{},"groups":{},"extra":1}`))
	require.NoError(t, mr.Set("godutch:group:BAD01", `not json`))

	_, err := store.LoadRegistry(context.Background())
	require.ErrorIs(t, err, storage.ErrMalformed)

	_, err = store.GetGroup(context.Background(), "BAD01")
	require.ErrorIs(t, err, storage.ErrMalformed)
}

func TestNew_ConnectionFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	store, err := New(Config{Addr: addr})
	assert.Error(t, err)
	assert.Nil(t, store)
}
