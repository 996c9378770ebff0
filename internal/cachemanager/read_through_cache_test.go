package cachemanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadThroughCache_LoadsOnceThenHits(t *testing.T) {
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		return "loaded:" + input, nil
	}

	inner := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache(inner, loader, false)

	got, err := rtc.Get(context.Background(), "k", "python", DefaultExpiration)
	require.NoError(t, err)
	require.Equal(t, "loaded:python", got)

	got, err = rtc.Get(context.Background(), "k", "python", DefaultExpiration)
	require.NoError(t, err)
	require.Equal(t, "loaded:python", got)
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_SkipCacheAlwaysLoads(t *testing.T) {
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		return input, nil
	}

	inner := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache(inner, loader, true)

	_, err := rtc.Get(context.Background(), "k", "x", DefaultExpiration)
	require.NoError(t, err)
	_, err = rtc.Get(context.Background(), "k", "x", DefaultExpiration)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestReadThroughCache_LoaderErrorNotCached(t *testing.T) {
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("boom")
		}
		return "ok", nil
	}

	inner := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache(inner, loader, false)

	_, err := rtc.Get(context.Background(), "k", "x", DefaultExpiration)
	require.Error(t, err)

	got, err := rtc.Get(context.Background(), "k", "x", DefaultExpiration)
	require.NoError(t, err)
	require.Equal(t, "ok", got)
	require.Equal(t, 2, calls)
}
