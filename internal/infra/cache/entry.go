package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusError    Status = "error"
)

// Fetcher loads the authoritative value for a key. It runs on the store's session
// context, never on a subscriber's.
type Fetcher func(ctx context.Context) (any, error)

type Options struct {
	// KeepPreviousData keeps resolved data visible while revalidating.
	KeepPreviousData bool
}

func DefaultOptions() Options {
	return Options{KeepPreviousData: true}
}

// Snapshot is an immutable view of one entry at one point in time.
type Snapshot struct {
	Key          Key
	Status       Status
	Data         any
	Err          error
	IsValidating bool
	UpdatedAt    time.Time
	// Version grows with every change of the entry; listeners may drop older snapshots.
	Version uint64
}

func (s Snapshot) HasData() bool {
	return s.Data != nil
}

// IsLoading is true when nothing can be shown yet.
func (s Snapshot) IsLoading() bool {
	return s.Data == nil && s.Err == nil
}

type Listener func(Snapshot)

// Value returns the snapshot data as T.
func Value[T any](snap Snapshot) (T, bool) {
	v, ok := snap.Data.(T)
	return v, ok
}

type entry struct {
	key        Key
	fetcher    Fetcher
	opts       Options
	status     Status
	data       any
	err        error
	validating bool
	stale      bool
	gen        uint64
	fetchSeq   uint64
	version    uint64
	updatedAt  time.Time
	listeners  map[uuid.UUID]Listener

	queue       []delivery
	dispatching bool
}

type delivery struct {
	snap      Snapshot
	listeners []Listener
}

func newEntry(key Key, fetcher Fetcher, opts Options) *entry {
	return &entry{
		key:       key,
		fetcher:   fetcher,
		opts:      opts,
		status:    StatusPending,
		listeners: make(map[uuid.UUID]Listener),
	}
}

func (e *entry) snapshot() Snapshot {
	snap := Snapshot{
		Key:          e.key,
		Status:       e.status,
		Data:         e.data,
		Err:          e.err,
		IsValidating: e.validating,
		UpdatedAt:    e.updatedAt,
		Version:      e.version,
	}
	if e.validating && !e.opts.KeepPreviousData {
		snap.Status = StatusPending
		snap.Data = nil
		snap.Err = nil
	}
	return snap
}

func (e *entry) needsFetch() bool {
	if e.validating {
		return false
	}
	return e.stale || e.status != StatusResolved
}

func (e *entry) listenerList() []Listener {
	out := make([]Listener, 0, len(e.listeners))
	for _, l := range e.listeners {
		out = append(out, l)
	}
	return out
}

// enqueue reports whether the caller has to dispatch the queue.
func (e *entry) enqueue(snap Snapshot, listeners []Listener) bool {
	if len(listeners) > 0 {
		e.queue = append(e.queue, delivery{snap: snap, listeners: listeners})
	}
	if e.dispatching || len(e.queue) == 0 {
		return false
	}
	e.dispatching = true
	return true
}

func (e *entry) enqueueAll() bool {
	return e.enqueue(e.snapshot(), e.listenerList())
}
