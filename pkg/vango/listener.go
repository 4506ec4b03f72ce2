package vango

// Listener is anything that can be notified when a dependency changes.
// Sessions, memos, and effects implement it.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier used for deduplication.
	ID() uint64
}

// Cleanup is a function returned by effects to release resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()

// ListenerFunc adapts a function to the Listener interface. It remembers
// the sources it was subscribed to until Release.
type ListenerFunc struct {
	id   uint64
	fn   func()
	deps deps
}

// NewListenerFunc wraps fn as a Listener with a fresh ID.
func NewListenerFunc(fn func()) *ListenerFunc {
	return &ListenerFunc{id: nextID(), fn: fn}
}

// MarkDirty calls the wrapped function.
func (l *ListenerFunc) MarkDirty() {
	if l.fn != nil {
		l.fn()
	}
}

// ID returns the listener's identifier.
func (l *ListenerFunc) ID() uint64 {
	return l.id
}

// Release unsubscribes l from every source it read since the last Release.
func (l *ListenerFunc) Release() {
	l.deps.release(l)
}

func (l *ListenerFunc) dependsOn(s *source) { l.deps.add(s) }

var _ dependent = (*ListenerFunc)(nil)
