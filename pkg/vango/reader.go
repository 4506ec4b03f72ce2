package vango

// Reader is any value a widget can read reactively. Signals, memos, static
// values and derived computations all satisfy it, so widget props can accept
// whichever the caller has.
type Reader[T any] interface {
	Get() T
}

// staticReader wraps a plain value.
type staticReader[T any] struct {
	value T
}

func (s staticReader[T]) Get() T { return s.value }

// Static wraps a plain value as a Reader. Reading it never subscribes.
func Static[T any](value T) Reader[T] {
	return staticReader[T]{value: value}
}

// Derived is a computation over other readers. It is not memoized: every
// Get runs the computation, which subscribes the current listener to
// whatever the computation reads.
type Derived[T any] struct {
	compute func() T
}

// Derive creates a Derived reader from compute.
//
//	double := Derive(func() int { return count.Get() * 2 })
func Derive[T any](compute func() T) *Derived[T] {
	return &Derived[T]{compute: compute}
}

// Get runs the computation.
func (d *Derived[T]) Get() T {
	return d.compute()
}

// Peek runs the computation without tracking.
func (d *Derived[T]) Peek() T {
	var v T
	Untracked(func() { v = d.compute() })
	return v
}

var (
	_ Reader[int] = (*Signal[int])(nil)
	_ Reader[int] = (*IntSignal)(nil)
	_ Reader[int] = (*Memo[int])(nil)
	_ Reader[int] = (*Derived[int])(nil)
)
