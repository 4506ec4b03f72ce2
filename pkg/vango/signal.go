package vango

import (
	"reflect"
	"sync"
)

// Signal holds a value that can change over time. Reading it with Get
// while a listener is current makes that listener depend on it; a write
// that changes the value notifies every dependent.
type Signal[T any] struct {
	src source

	mu    sync.RWMutex
	value T
	equal func(T, T) bool
}

// NewSignal creates a signal holding initial.
//
//	count := vango.NewSignal(0)
//	count.Set(count.Peek() + 1)
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{src: source{id: nextID()}, value: initial}
}

// Get returns the value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	v := s.Peek()
	s.src.track()
	return v
}

// Peek returns the value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v. Dependents are notified only if v differs from the current
// value.
func (s *Signal[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update replaces the value with fn(current) under the signal's lock.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.src.notify()
	}
}

// WithEquals replaces the comparison used to detect changes and returns s.
func (s *Signal[T]) WithEquals(fn func(a, b T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the signal's unique identifier.
func (s *Signal[T]) ID() uint64 { return s.src.id }

// Subscribers returns how many listeners depend on s.
func (s *Signal[T]) Subscribers() int { return s.src.count() }

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals compares comparable values with == and everything else
// with reflect.DeepEqual.
func defaultEquals[T any](a, b T) bool {
	x, y := any(a), any(b)
	if v := reflect.ValueOf(x); v.IsValid() && v.Comparable() {
		return x == y
	}
	return reflect.DeepEqual(x, y)
}
