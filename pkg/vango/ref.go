package vango

import (
	"fmt"
	"sync/atomic"
)

// Ref is a slot the runtime fills in after rendering, usually with a
// handle to a mounted element. It starts empty and is emptied again when
// the element leaves the tree. Safe for concurrent use.
type Ref[T any] struct {
	placeholder T
	cur         atomic.Pointer[T]
}

// NewRef creates an empty Ref. Current reports placeholder until Set.
func NewRef[T any](placeholder T) *Ref[T] {
	return &Ref[T]{placeholder: placeholder}
}

// Current returns the stored value, or the placeholder while empty.
func (r *Ref[T]) Current() T {
	if p := r.cur.Load(); p != nil {
		return *p
	}
	return r.placeholder
}

// Resolve returns the stored value, or ErrRefUnresolved while empty.
func (r *Ref[T]) Resolve() (T, error) {
	if p := r.cur.Load(); p != nil {
		return *p, nil
	}
	var zero T
	return zero, ErrRefUnresolved
}

// MustResolve is Resolve for code that cannot go on without the value. It
// panics with an error naming what was expected, which the session
// recovers as a failed handler:
//
//	input := ref.MustResolve("<input> to exist")
func (r *Ref[T]) MustResolve(expected string) T {
	v, err := r.Resolve()
	if err != nil {
		panic(fmt.Errorf("expected %s: %w", expected, err))
	}
	return v
}

// Set fills the ref.
func (r *Ref[T]) Set(v T) { r.cur.Store(&v) }

// IsSet reports whether the ref holds a value.
func (r *Ref[T]) IsSet() bool { return r.cur.Load() != nil }

// Clear empties the ref.
func (r *Ref[T]) Clear() { r.cur.Store(nil) }
