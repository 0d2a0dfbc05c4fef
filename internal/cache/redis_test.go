package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homefind/rental-backend/internal/config"
)

type testStruct struct {
	Name  string
	Price int
}

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := testStruct{Name: "seaside cottage", Price: 100}
	err := cache.Set("house:h1", expected, time.Minute)
	require.NoError(t, err)

	var actual testStruct
	found, err := cache.Get("house:h1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out testStruct
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("rental:r1", testStruct{Name: "x"}, time.Minute))
	require.NoError(t, cache.Invalidate("rental:r1"))

	var out testStruct
	found, err := cache.Get("rental:r1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPushListAndGetList(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.PushList("rentals:h1:0", testStruct{Name: "a", Price: 1}, time.Minute))
	require.NoError(t, cache.PushList("rentals:h1:0", testStruct{Name: "b", Price: 2}, time.Minute))

	vals, err := cache.GetList("rentals:h1:0")
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.JSONEq(t, `{"Name":"a","Price":1}`, vals[0])
	assert.JSONEq(t, `{"Name":"b","Price":2}`, vals[1])
}

func TestGetList_Miss(t *testing.T) {
	cache := setupTestCache(t)

	vals, err := cache.GetList("rentals:none:0")
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestTrimList(t *testing.T) {
	cache := setupTestCache(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, cache.PushList("lst", testStruct{Price: i}, time.Minute))
	}
	require.NoError(t, cache.TrimList("lst", 0, 2))

	vals, err := cache.GetList("lst")
	require.NoError(t, err)
	assert.Len(t, vals, 3)
}

func TestNoop_AlwaysMisses(t *testing.T) {
	var c Noop

	require.NoError(t, c.Set("k", testStruct{}, time.Minute))
	var out testStruct
	found, err := c.Get("k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.PushList("lst", testStruct{}, time.Minute))
	vals, err := c.GetList("lst")
	require.NoError(t, err)
	assert.Empty(t, vals)

	require.NoError(t, c.Invalidate("k"))
	require.NoError(t, c.TrimList("lst", 0, 1))
}
