package cache

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/errs"
)

var (
	ErrClosed    = errs.New("cache store is closed")
	ErrNotCached = errs.New("key is not cached")
	ErrNoFetcher = errs.New("key has no fetcher")
)

// Store is a session-scoped map of keyed reads. Values are shared between readers and
// must be treated as immutable; use Mutate to derive a new value.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	opts    Options
	clock   clock.Clock
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

func NewStore(opts Options, clk clock.Clock, logger *slog.Logger) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		entries: make(map[string]*entry),
		opts:    opts,
		clock:   clk,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *Store) DefaultOptions() Options {
	return s.opts
}

type Subscription struct {
	store *Store
	key   Key
	id    uuid.UUID
	once  sync.Once
}

func (sub *Subscription) Key() Key {
	return sub.key
}

// Unsubscribe stops delivery. An in-flight fetch keeps running and still settles the entry.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.store.mu.Lock()
		defer sub.store.mu.Unlock()
		if e, ok := sub.store.entries[sub.key.String()]; ok {
			delete(e.listeners, sub.id)
		}
	})
}

// Subscribe registers listener for key and delivers the current snapshot right away.
// A fetch starts when the key has nothing usable: no entry, an errored entry or a stale one.
func (s *Store) Subscribe(key Key, fetcher Fetcher, opts Options, listener Listener) *Subscription {
	sub := &Subscription{store: s, key: key, id: uuid.New()}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener(Snapshot{Key: key, Status: StatusError, Err: ErrClosed})
		return sub
	}
	e := s.entryLocked(key, fetcher, opts)
	e.listeners[sub.id] = listener
	if e.needsFetch() {
		s.startFetchLocked(e)
	}
	dispatch := e.enqueue(e.snapshot(), []Listener{listener})
	s.mu.Unlock()

	if dispatch {
		s.dispatch(e)
	}
	return sub
}

// Fetch reads through the cache: usable data is returned as is, otherwise the caller
// joins or starts the fetch for the key and waits for it.
func (s *Store) Fetch(ctx context.Context, key Key, fetcher Fetcher, opts Options) (any, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	e := s.entryLocked(key, fetcher, opts)
	if snap := e.snapshot(); snap.HasData() && snap.Err == nil && !e.stale {
		s.mu.Unlock()
		return snap.Data, nil
	}
	gen := e.gen
	ch := s.startFetchLocked(e)
	s.mu.Unlock()

	return s.await(ctx, key, gen, ch)
}

// Refresh forces a new fetch for a cached key and waits for it. Any fetch already in
// flight for the key is superseded.
func (s *Store) Refresh(ctx context.Context, key Key) (any, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	e, ok := s.entries[key.String()]
	if !ok {
		s.mu.Unlock()
		return nil, errs.Wrapf(ErrNotCached, "refresh %s", key)
	}
	if e.fetcher == nil {
		s.mu.Unlock()
		return nil, errs.Wrapf(ErrNoFetcher, "refresh %s", key)
	}
	ch := s.restartLocked(e)
	gen := e.gen
	dispatch := e.enqueueAll()
	s.mu.Unlock()

	if dispatch {
		s.dispatch(e)
	}
	return s.await(ctx, key, gen, ch)
}

// RefreshPrefix refreshes every cached key under prefix and returns the first failure.
func (s *Store) RefreshPrefix(ctx context.Context, prefix string) error {
	var firstErr error
	for _, key := range s.Keys(prefix) {
		if _, err := s.Refresh(ctx, key); err != nil && !errs.Is(err, ErrNoFetcher) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Invalidate marks key stale. Keys with subscribers revalidate immediately; the others
// refetch on their next read.
func (s *Store) Invalidate(key Key) {
	s.invalidate(func(e *entry) bool { return e.key == key })
}

// InvalidatePrefix invalidates every key whose path starts with prefix.
func (s *Store) InvalidatePrefix(prefix string) int {
	return s.invalidate(func(e *entry) bool { return e.key.HasPrefix(prefix) })
}

// InvalidateActive revalidates only subscribed keys under prefix. An empty prefix
// matches everything.
func (s *Store) InvalidateActive(prefix string) int {
	return s.invalidate(func(e *entry) bool { return len(e.listeners) > 0 && e.key.HasPrefix(prefix) })
}

func (s *Store) invalidate(match func(*entry) bool) int {
	var touched, dispatch []*entry

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	for _, e := range s.entries {
		if !match(e) {
			continue
		}
		if len(e.listeners) > 0 && e.fetcher != nil {
			s.restartLocked(e)
		} else {
			e.gen++
			e.version++
			e.validating = false
		}
		e.stale = true
		touched = append(touched, e)
		if e.enqueueAll() {
			dispatch = append(dispatch, e)
		}
	}
	s.mu.Unlock()

	for _, e := range dispatch {
		s.dispatch(e)
	}
	if len(touched) > 0 {
		s.logger.Debug("cache invalidated", slog.Int("keys", len(touched)))
	}
	return len(touched)
}

// Set stores an authoritative value for key and notifies its subscribers.
func (s *Store) Set(key Key, value any) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	e := s.entryLocked(key, nil, s.opts)
	s.resolveLocked(e, value)
	dispatch := e.enqueueAll()
	s.mu.Unlock()

	if dispatch {
		s.dispatch(e)
	}
}

// Upsert derives the value of key from its resolved value, if there is one, as one
// atomic step. fn reports whether to store its result.
func (s *Store) Upsert(key Key, fn func(current any, ok bool) (any, bool)) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	var current any
	e, ok := s.entries[key.String()]
	if ok && e.data != nil {
		current = e.data
	}
	next, store := fn(current, current != nil)
	if !store {
		s.mu.Unlock()
		return false
	}
	e = s.entryLocked(key, nil, s.opts)
	s.resolveLocked(e, next)
	dispatch := e.enqueueAll()
	s.mu.Unlock()

	if dispatch {
		s.dispatch(e)
	}
	return true
}

// MutateFunc derives the next value from the current one. It must not modify current.
type MutateFunc func(current any) (next any, changed bool)

// Mutate applies fn to the resolved value of key. It reports whether the value changed.
func (s *Store) Mutate(key Key, fn MutateFunc) bool {
	return s.MutateMatching(func(k Key) bool { return k == key }, fn) > 0
}

// MutatePrefix applies fn to every resolved key under prefix as one atomic step.
func (s *Store) MutatePrefix(prefix string, fn MutateFunc) int {
	return s.MutateMatching(func(k Key) bool { return k.HasPrefix(prefix) }, fn)
}

func (s *Store) MutateMatching(match func(Key) bool, fn MutateFunc) int {
	var changed, dispatch []*entry

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	for _, e := range s.entries {
		if !match(e.key) || e.data == nil {
			continue
		}
		next, ok := fn(e.data)
		if !ok {
			continue
		}
		s.resolveLocked(e, next)
		changed = append(changed, e)
		if e.enqueueAll() {
			dispatch = append(dispatch, e)
		}
	}
	s.mu.Unlock()

	for _, e := range dispatch {
		s.dispatch(e)
	}
	return len(changed)
}

func (s *Store) Peek(key Key) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key.String()]
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(), true
}

// Keys lists cached keys under prefix. An empty prefix lists everything.
func (s *Store) Keys(prefix string) []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]Key, 0, len(s.entries))
	for _, e := range s.entries {
		if e.key.HasPrefix(prefix) {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Close ends the session: in-flight fetches are cancelled and listeners dropped.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, e := range s.entries {
		e.listeners = make(map[uuid.UUID]Listener)
	}
	s.mu.Unlock()
	s.cancel()
}

func (s *Store) entryLocked(key Key, fetcher Fetcher, opts Options) *entry {
	e, ok := s.entries[key.String()]
	if !ok {
		e = newEntry(key, fetcher, opts)
		s.entries[key.String()] = e
		return e
	}
	if fetcher != nil {
		e.fetcher = fetcher
		e.opts = opts
	}
	return e
}

func (s *Store) resolveLocked(e *entry, value any) {
	e.gen++
	e.version++
	e.status = StatusResolved
	e.data = value
	e.err = nil
	e.stale = false
	e.validating = false
	e.updatedAt = s.clock.Now()
}

// restartLocked supersedes whatever is in flight for e and starts a new fetch.
func (s *Store) restartLocked(e *entry) <-chan singleflight.Result {
	e.gen++
	e.validating = false
	return s.startFetchLocked(e)
}

// startFetchLocked joins the fetch in flight for e or starts one.
func (s *Store) startFetchLocked(e *entry) <-chan singleflight.Result {
	if e.fetcher == nil {
		ch := make(chan singleflight.Result, 1)
		ch <- singleflight.Result{Err: errs.Wrapf(ErrNoFetcher, "fetch %s", e.key)}
		return ch
	}
	if !e.validating {
		e.fetchSeq++
		e.version++
		e.validating = true
	}
	key, gen, fetcher := e.key, e.gen, e.fetcher
	return s.group.DoChan(key.String()+"#"+strconv.FormatUint(e.fetchSeq, 10), func() (any, error) {
		return s.settle(key, gen, fetcher)
	})
}

// settle runs fetcher and records its outcome unless the entry moved to a newer generation.
func (s *Store) settle(key Key, gen uint64, fetcher Fetcher) (any, error) {
	v, err := fetcher(s.ctx)

	s.mu.Lock()
	e, ok := s.entries[key.String()]
	if !ok || e.gen != gen || s.closed {
		s.mu.Unlock()
		s.logger.Debug("cache fetch superseded", slog.String("key", key.String()))
		return v, err
	}
	if err != nil {
		e.version++
		e.status = StatusError
		e.err = err
		e.validating = false
		e.updatedAt = s.clock.Now()
	} else {
		e.version++
		e.status = StatusResolved
		e.data = v
		e.err = nil
		e.stale = false
		e.validating = false
		e.updatedAt = s.clock.Now()
	}
	dispatch := e.enqueueAll()
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("cache fetch failed", slog.String("key", key.String()), slog.String("kind", errs.KindOf(err).String()))
	}
	if dispatch {
		s.dispatch(e)
	}
	return v, err
}

// await waits for ch. When the fetch was superseded the newer resolved value wins.
func (s *Store) await(ctx context.Context, key Key, gen uint64, ch <-chan singleflight.Result) (any, error) {
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, errs.Wrap(ctx.Err(), "await "+key.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key.String()]; ok && e.gen != gen && e.status == StatusResolved && !e.stale {
		return e.data, nil
	}
	return res.Val, res.Err
}

// dispatch delivers queued snapshots of e in order, outside the lock. Only one
// goroutine dispatches an entry at a time.
func (s *Store) dispatch(e *entry) {
	for {
		s.mu.Lock()
		if len(e.queue) == 0 {
			e.dispatching = false
			s.mu.Unlock()
			return
		}
		d := e.queue[0]
		e.queue = e.queue[1:]
		s.mu.Unlock()

		for _, l := range d.listeners {
			l(d.snap)
		}
	}
}
