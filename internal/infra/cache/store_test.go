//go:build unit

package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"market-client/internal/infra/cache"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/errs"
	"market-client/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

func newStore(opts cache.Options) *cache.Store {
	return cache.NewStore(opts, clock.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)), logger.Discard())
}

// gate is a fetcher that blocks until released and counts its invocations.
type gate struct {
	calls   atomic.Int32
	release chan struct{}
	value   atomic.Value
	err     error
}

func newGate(v any) *gate {
	g := &gate{release: make(chan struct{})}
	g.value.Store(v)
	return g
}

func (g *gate) fetch(ctx context.Context) (any, error) {
	g.calls.Add(1)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.value.Load(), nil
}

func (g *gate) open() {
	close(g.release)
}

func constant(v any, calls *atomic.Int32) cache.Fetcher {
	return func(context.Context) (any, error) {
		calls.Add(1)
		return v, nil
	}
}

type recorder struct {
	ch chan cache.Snapshot
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan cache.Snapshot, 64)}
}

func (r *recorder) listen(s cache.Snapshot) {
	r.ch <- s
}

func (r *recorder) next(t *testing.T) cache.Snapshot {
	t.Helper()
	select {
	case s := <-r.ch:
		return s
	case <-time.After(waitTimeout):
		t.Fatal("no snapshot delivered")
		return cache.Snapshot{}
	}
}

// until drains snapshots until one satisfies ok.
func (r *recorder) until(t *testing.T, ok func(cache.Snapshot) bool) cache.Snapshot {
	t.Helper()
	for {
		if s := r.next(t); ok(s) {
			return s
		}
	}
}

func resolved(s cache.Snapshot) bool {
	return s.Status == cache.StatusResolved && !s.IsValidating
}

func TestStore_Fetch(t *testing.T) {
	t.Run("concurrent reads share one fetch", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/trade/get", []string{"pending"})
		g := newGate("trades")

		const readers = 8
		results := make([]any, readers)
		var wg sync.WaitGroup
		for i := 0; i < readers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := store.Fetch(context.Background(), key, g.fetch, cache.DefaultOptions())
				assert.NoError(t, err)
				results[i] = v
			}(i)
		}
		require.Eventually(t, func() bool { return g.calls.Load() == 1 }, waitTimeout, time.Millisecond)
		g.open()
		wg.Wait()

		assert.Equal(t, int32(1), g.calls.Load())
		for _, v := range results {
			assert.Equal(t, "trades", v)
		}
	})

	t.Run("resolved data is served without fetching", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/user/me")
		var calls atomic.Int32

		_, err := store.Fetch(context.Background(), key, constant("me", &calls), cache.DefaultOptions())
		require.NoError(t, err)
		v, err := store.Fetch(context.Background(), key, constant("other", &calls), cache.DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, "me", v)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("failure is stored and retried on next read", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/item/detailed", 7)
		boom := errs.NewKind(errs.KindNetwork, "network_error", "connection refused")

		_, err := store.Fetch(context.Background(), key, func(context.Context) (any, error) { return nil, boom }, cache.DefaultOptions())
		require.ErrorIs(t, err, boom)
		snap, ok := store.Peek(key)
		require.True(t, ok)
		assert.Equal(t, cache.StatusError, snap.Status)

		var calls atomic.Int32
		v, err := store.Fetch(context.Background(), key, constant("item", &calls), cache.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "item", v)
	})

	t.Run("caller cancellation does not abort the fetch", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/item/detailed", 1)
		g := newGate("item")

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := store.Fetch(ctx, key, g.fetch, cache.DefaultOptions())
			done <- err
		}()
		require.Eventually(t, func() bool { return g.calls.Load() == 1 }, waitTimeout, time.Millisecond)
		cancel()
		require.ErrorIs(t, <-done, context.Canceled)

		g.open()
		require.Eventually(t, func() bool {
			snap, _ := store.Peek(key)
			return snap.Status == cache.StatusResolved
		}, waitTimeout, time.Millisecond)
	})
}

func TestStore_Subscribe(t *testing.T) {
	t.Run("delivers loading then resolved and shares resolved data", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/trade/get", []string{})
		g := newGate("list")

		first := newRecorder()
		sub := store.Subscribe(key, g.fetch, cache.DefaultOptions(), first.listen)
		defer sub.Unsubscribe()

		loading := first.next(t)
		assert.True(t, loading.IsLoading())
		assert.True(t, loading.IsValidating)

		g.open()
		got := first.until(t, resolved)
		assert.Equal(t, "list", got.Data)

		second := newRecorder()
		var calls atomic.Int32
		sub2 := store.Subscribe(key, constant("unused", &calls), cache.DefaultOptions(), second.listen)
		defer sub2.Unsubscribe()

		immediate := second.next(t)
		assert.Equal(t, "list", immediate.Data)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("stale data stays visible while revalidating", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/item/detailed", 3)

		var version atomic.Int32
		release := make(chan struct{}, 1)
		fetcher := func(context.Context) (any, error) {
			if version.Add(1) > 1 {
				<-release
			}
			return version.Load(), nil
		}
		rec := newRecorder()
		sub := store.Subscribe(key, fetcher, cache.DefaultOptions(), rec.listen)
		defer sub.Unsubscribe()
		rec.until(t, resolved)

		store.Invalidate(key)
		during := rec.until(t, func(s cache.Snapshot) bool { return s.IsValidating })
		assert.Equal(t, int32(1), during.Data)
		assert.False(t, during.IsLoading())

		release <- struct{}{}
		after := rec.until(t, resolved)
		assert.Equal(t, int32(2), after.Data)
		assert.Greater(t, after.Version, during.Version)
	})

	t.Run("without keepPreviousData revalidation shows loading", func(t *testing.T) {
		opts := cache.Options{KeepPreviousData: false}
		store := newStore(opts)
		defer store.Close()
		key := cache.NewKey("/trade/get", []string{"success"})

		var n atomic.Int32
		release := make(chan struct{}, 1)
		fetcher := func(context.Context) (any, error) {
			if n.Add(1) > 1 {
				<-release
			}
			return "v" + string(rune('0'+n.Load())), nil
		}
		rec := newRecorder()
		sub := store.Subscribe(key, fetcher, opts, rec.listen)
		defer sub.Unsubscribe()
		rec.until(t, resolved)

		store.Invalidate(key)
		during := rec.until(t, func(s cache.Snapshot) bool { return s.IsValidating })
		assert.True(t, during.IsLoading())
		assert.Nil(t, during.Data)

		release <- struct{}{}
		assert.Equal(t, "v2", rec.until(t, resolved).Data)
	})

	t.Run("unsubscribe stops delivery but the fetch completes", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/user/me")
		g := newGate("me")

		rec := newRecorder()
		sub := store.Subscribe(key, g.fetch, cache.DefaultOptions(), rec.listen)
		rec.next(t)
		sub.Unsubscribe()
		sub.Unsubscribe()
		g.open()

		require.Eventually(t, func() bool {
			snap, _ := store.Peek(key)
			return snap.Status == cache.StatusResolved
		}, waitTimeout, time.Millisecond)
		select {
		case s := <-rec.ch:
			t.Fatalf("unexpected delivery after unsubscribe: %+v", s)
		default:
		}
	})

	t.Run("revalidating unchanged data yields identical output", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/trade/get", []string{"pending", "processing"})
		payload := []map[string]any{{"trade_id": 1, "state": "pending"}, {"trade_id": 2, "state": "processing"}}

		var calls atomic.Int32
		rec := newRecorder()
		sub := store.Subscribe(key, constant(payload, &calls), cache.DefaultOptions(), rec.listen)
		defer sub.Unsubscribe()
		before, err := json.Marshal(rec.until(t, resolved).Data)
		require.NoError(t, err)

		store.Invalidate(key)
		rec.until(t, func(s cache.Snapshot) bool { return s.IsValidating })
		after, err := json.Marshal(rec.until(t, resolved).Data)
		require.NoError(t, err)

		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, string(before), string(after))
	})
}

func TestStore_Consistency(t *testing.T) {
	t.Run("set supersedes an in-flight fetch", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/trade", 42)
		g := newGate("stale from server")

		done := make(chan any, 1)
		go func() {
			v, err := store.Fetch(context.Background(), key, g.fetch, cache.DefaultOptions())
			assert.NoError(t, err)
			done <- v
		}()
		require.Eventually(t, func() bool { return g.calls.Load() == 1 }, waitTimeout, time.Millisecond)

		store.Set(key, "authoritative")
		g.open()

		assert.Equal(t, "authoritative", <-done)
		snap, ok := store.Peek(key)
		require.True(t, ok)
		assert.Equal(t, "authoritative", snap.Data)
	})

	t.Run("mutate prefix touches only resolved matching keys", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		pending := cache.NewKey("/trade/get", []string{"pending"})
		all := cache.NewKey("/trade/get", []string{})
		detail := cache.NewKey("/item/detailed", 1)
		store.Set(pending, []int{1, 2})
		store.Set(all, []int{3})
		store.Set(detail, "item")

		n := store.MutatePrefix("/trade/get", func(current any) (any, bool) {
			ids := current.([]int)
			for _, id := range ids {
				if id == 2 {
					return []int{1}, true
				}
			}
			return current, false
		})

		assert.Equal(t, 1, n)
		snap, _ := store.Peek(pending)
		assert.Equal(t, []int{1}, snap.Data)
		snap, _ = store.Peek(all)
		assert.Equal(t, []int{3}, snap.Data)
		snap, _ = store.Peek(detail)
		assert.Equal(t, "item", snap.Data)
	})

	t.Run("invalidate without subscribers refetches on next read", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/item", 5)
		var calls atomic.Int32
		fetcher := constant("page", &calls)

		_, err := store.Fetch(context.Background(), key, fetcher, cache.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, 1, store.InvalidatePrefix("/item"))
		assert.Equal(t, int32(1), calls.Load())

		_, err = store.Fetch(context.Background(), key, fetcher, cache.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("invalidate active skips keys nobody watches", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		var calls atomic.Int32
		rec := newRecorder()
		sub := store.Subscribe(cache.NewKey("/trade/get", []string{}), constant("watched", &calls), cache.DefaultOptions(), rec.listen)
		defer sub.Unsubscribe()
		rec.until(t, resolved)
		store.Set(cache.NewKey("/user/me"), "me")

		assert.Equal(t, 1, store.InvalidateActive(""))
		rec.until(t, func(s cache.Snapshot) bool { return s.IsValidating })
		rec.until(t, resolved)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("refresh waits for the new value", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		defer store.Close()
		key := cache.NewKey("/trade/get", []string{})
		var n atomic.Int32
		fetcher := func(context.Context) (any, error) { return n.Add(1), nil }

		_, err := store.Fetch(context.Background(), key, fetcher, cache.DefaultOptions())
		require.NoError(t, err)
		v, err := store.Refresh(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, int32(2), v)

		_, err = store.Refresh(context.Background(), cache.NewKey("/nothing"))
		assert.ErrorIs(t, err, cache.ErrNotCached)
	})

	t.Run("closed store rejects reads and cancels fetches", func(t *testing.T) {
		store := newStore(cache.DefaultOptions())
		key := cache.NewKey("/user/me")
		g := newGate("me")
		store.Subscribe(key, g.fetch, cache.DefaultOptions(), func(cache.Snapshot) {})
		require.Eventually(t, func() bool { return g.calls.Load() == 1 }, waitTimeout, time.Millisecond)

		store.Close()
		_, err := store.Fetch(context.Background(), key, g.fetch, cache.DefaultOptions())
		assert.True(t, errors.Is(err, cache.ErrClosed))
	})
}

func TestKey(t *testing.T) {
	a := cache.NewKey("/trade/get", []string{"pending", "processing"})
	b := cache.NewKey("/trade/get", []string{"pending", "processing"})
	c := cache.NewKey("/trade/get", []string{"success"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, a.HasPrefix("/trade"))
	assert.False(t, a.HasPrefix("/item"))
	assert.Equal(t, `/trade/get [["pending","processing"]]`, a.String())
	assert.Equal(t, "/user/me", cache.NewKey("/user/me").String())
}
