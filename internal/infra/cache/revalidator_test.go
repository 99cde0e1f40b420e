//go:build unit

package cache_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"market-client/internal/infra/cache"
	"market-client/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remoteValue is a fetcher over a value that changes behind the cache's back.
type remoteValue struct {
	calls atomic.Int32
	value atomic.Value
}

func newRemoteValue(v string) *remoteValue {
	r := &remoteValue{}
	r.value.Store(v)
	return r
}

func (r *remoteValue) fetch(context.Context) (any, error) {
	r.calls.Add(1)
	return r.value.Load(), nil
}

func stopRevalidator(t *testing.T, r *cache.Revalidator) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
}

func TestRevalidator(t *testing.T) {
	t.Run("polling refetches watched keys without focus", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		watchedKey := cache.NewKey("/trade/get", []string{"active"})
		idleKey := cache.NewKey("/item/detailed", int64(1))
		watched := newRemoteValue("pending")
		idle := newRemoteValue("bike")

		rec := newRecorder()
		sub := store.Subscribe(watchedKey, watched.fetch, cache.DefaultOptions(), rec.listen)
		defer sub.Unsubscribe()
		first := rec.until(t, resolved)
		require.Equal(t, "pending", first.Data)

		_, err := store.Fetch(context.Background(), idleKey, idle.fetch, cache.DefaultOptions())
		require.NoError(t, err)

		watched.value.Store("cancelled")
		idle.value.Store("bike v2")

		// the shortest cron interval is one second
		r := cache.NewRevalidator(store, time.Second, logger.Discard())
		require.NoError(t, r.Start())
		defer stopRevalidator(t, r)

		got := rec.until(t, func(s cache.Snapshot) bool {
			return resolved(s) && s.Data == "cancelled"
		})
		assert.Greater(t, got.Version, first.Version)
		assert.GreaterOrEqual(t, watched.calls.Load(), int32(2))
		assert.Equal(t, int32(1), idle.calls.Load(), "keys nobody watches are left to their next read")
	})

	t.Run("zero interval disables polling but focus still works", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/trade/get", []string{"pending"})
		remote := newRemoteValue("pending")

		rec := newRecorder()
		sub := store.Subscribe(key, remote.fetch, cache.DefaultOptions(), rec.listen)
		defer sub.Unsubscribe()
		rec.until(t, resolved)

		r := cache.NewRevalidator(store, 0, logger.Discard())
		require.NoError(t, r.Start())
		defer stopRevalidator(t, r)

		remote.value.Store("cancelled")
		assert.Equal(t, 1, r.Focus())

		got := rec.until(t, func(s cache.Snapshot) bool {
			return resolved(s) && s.Data == "cancelled"
		})
		assert.Equal(t, "cancelled", got.Data)
		assert.Equal(t, int32(2), remote.calls.Load())
	})
}
