package cachemanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type exampleStruct struct {
	ID   int
	Name string
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, exampleStruct]("standards", DefaultExpiration, DefaultCleanupInterval)
	example := exampleStruct{Name: "python"}
	cache.Set(context.Background(), "std:python", example, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "std:python")
	require.True(t, ok)
	require.Equal(t, example, got)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("standards", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("standards", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("key", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "key")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("standards", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "a", "1", DefaultExpiration)
	cache.Set(context.Background(), "b", "2", DefaultExpiration)

	require.NoError(t, cache.Delete(context.Background(), "a"))

	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
	_, ok = cache.Get(context.Background(), "b")
	require.True(t, ok)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("standards", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "a", "1", DefaultExpiration)

	require.NoError(t, cache.Flush(context.Background()))

	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
}
