package vango

import "sync/atomic"

// Effect runs a function for its side effects and runs it again whenever a
// value it read changes. Under an Owner the re-run is queued until the
// owner's RunPendingEffects; without one it happens immediately.
type Effect struct {
	id    uint64
	fn    func() Cleanup
	owner *Owner
	deps  deps

	cleanup  Cleanup
	pending  atomic.Bool
	disposed atomic.Bool
}

// CreateEffect creates an effect owned by the current owner and runs it
// once.
//
//	vango.CreateEffect(func() vango.Cleanup {
//	    slog.Debug("count changed", "count", count.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{id: nextID(), fn: fn, owner: owning()}
	if e.owner != nil {
		e.owner.registerEffect(e)
	}
	e.run()
	return e
}

// MarkDirty schedules a re-run. Repeated calls before the re-run collapse
// into one.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() || !e.pending.CompareAndSwap(false, true) {
		return
	}
	if e.owner == nil {
		e.run()
		return
	}
	e.owner.scheduleEffect(e)
}

// ID returns the effect's unique identifier.
func (e *Effect) ID() uint64 { return e.id }

// Dispose stops the effect and runs its last cleanup.
func (e *Effect) Dispose() { e.dispose() }

func (e *Effect) dependsOn(s *source) { e.deps.add(s) }

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)
	e.runCleanup()
	e.deps.release(e)
	WithListener(e, func() { e.cleanup = e.fn() })
}

func (e *Effect) runCleanup() {
	if fn := e.cleanup; fn != nil {
		e.cleanup = nil
		fn()
	}
}

func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}
	e.runCleanup()
	e.deps.release(e)
}

var _ dependent = (*Effect)(nil)
