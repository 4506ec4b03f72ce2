package vango

import (
	"sync"
	"sync/atomic"
)

// Memo caches a computation over other reactive values. It is recomputed
// lazily: a change to anything it read marks it stale, and the next read
// runs the computation again. A memo can be read reactively itself.
type Memo[T any] struct {
	src     source
	deps    deps
	compute func() T

	mu    sync.RWMutex
	value T

	fresh   atomic.Bool
	running atomic.Bool
	runs    atomic.Uint64
}

// NewMemo creates a memo. compute first runs on the first read.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{src: source{id: nextID()}, compute: compute}
}

// Get returns the cached value, recomputing if stale, and subscribes the
// current listener.
func (m *Memo[T]) Get() T {
	m.src.track()
	return m.Peek()
}

// Peek is Get without the subscription. A stale memo still recomputes.
func (m *Memo[T]) Peek() T {
	if !m.fresh.Load() {
		m.refresh()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// MarkDirty marks the memo stale and passes the change on.
func (m *Memo[T]) MarkDirty() {
	if m.fresh.CompareAndSwap(true, false) {
		m.src.notify()
	}
}

// ID returns the memo's unique identifier.
func (m *Memo[T]) ID() uint64 { return m.src.id }

// Computations returns how many times compute has run.
func (m *Memo[T]) Computations() uint64 { return m.runs.Load() }

func (m *Memo[T]) dependsOn(s *source) { m.deps.add(s) }

func (m *Memo[T]) refresh() {
	// A memo that reads itself sees its previous value.
	if m.running.Swap(true) {
		return
	}
	defer m.running.Store(false)

	m.deps.release(m)

	var v T
	WithListener(m, func() { v = m.compute() })
	m.runs.Add(1)

	m.mu.Lock()
	m.value = v
	m.mu.Unlock()
	m.fresh.Store(true)
}

var _ dependent = (*Memo[int])(nil)
