package vango

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Owner is a disposal scope. Effects created while an Owner is current
// belong to it, and disposing it stops them and runs its cleanups.
//
// Each session has one root Owner. Widgets do not create their own; state
// that must be torn down with the page lives in an effect and returns a
// Cleanup.
type Owner struct {
	id     uint64
	parent *Owner

	mu       sync.Mutex
	children []*Owner
	effects  []*Effect
	cleanups []func()
	queued   []*Effect

	disposed atomic.Bool
}

// NewOwner creates an Owner nested under parent. A nil parent creates a
// root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{id: nextID(), parent: parent}
	if parent != nil {
		parent.mu.Lock()
		parent.children = append(parent.children, o)
		parent.mu.Unlock()
	}
	return o
}

// ID returns the owner's unique identifier.
func (o *Owner) ID() uint64 { return o.id }

// Parent returns the enclosing Owner, or nil for a root.
func (o *Owner) Parent() *Owner { return o.parent }

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool { return o.disposed.Load() }

// OnCleanup registers fn to run when o is disposed. Cleanups run in
// reverse order. If o is already disposed fn runs now.
func (o *Owner) OnCleanup(fn func()) {
	if !o.add(func() { o.cleanups = append(o.cleanups, fn) }) {
		fn()
	}
}

func (o *Owner) registerEffect(e *Effect) {
	o.add(func() { o.effects = append(o.effects, e) })
}

func (o *Owner) scheduleEffect(e *Effect) {
	o.add(func() { o.queued = append(o.queued, e) })
}

// add runs fn under the lock unless o is disposed.
func (o *Owner) add(fn func()) bool {
	if o.disposed.Load() {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fn()
	return true
}

func (o *Owner) snapshotChildren() []*Owner {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.children)
}

// RunPendingEffects runs the effects queued on o and then on its
// descendants. The session calls it once per event, after the handler.
func (o *Owner) RunPendingEffects() {
	if o.disposed.Load() {
		return
	}

	o.mu.Lock()
	queued := o.queued
	o.queued = nil
	o.mu.Unlock()

	for _, e := range queued {
		if e.pending.Load() {
			e.run()
		}
	}
	for _, child := range o.snapshotChildren() {
		child.RunPendingEffects()
	}
}

// HasPendingEffects reports whether o or any descendant has queued
// effects.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}

	o.mu.Lock()
	n := len(o.queued)
	o.mu.Unlock()
	if n > 0 {
		return true
	}
	return slices.ContainsFunc(o.snapshotChildren(), (*Owner).HasPendingEffects)
}

// Dispose tears o down: children newest first, then effects, then
// cleanups in reverse registration order. Calling it again does nothing.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if p := o.parent; p != nil {
		p.mu.Lock()
		if i := slices.Index(p.children, o); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
		p.mu.Unlock()
	}

	o.mu.Lock()
	children, effects, cleanups := o.children, o.effects, o.cleanups
	o.children, o.effects, o.cleanups, o.queued = nil, nil, nil, nil
	o.mu.Unlock()

	for _, child := range slices.Backward(children) {
		child.Dispose()
	}
	for _, e := range effects {
		e.dispose()
	}
	for _, fn := range slices.Backward(cleanups) {
		fn()
	}
}
