// Package vango is the reactive core behind every tour widget.
//
// A widget keeps its state in signals and reads them while it renders.
// The read is recorded against whatever listener is running (the session's
// render, a memo, an effect), and a later write marks that listener dirty.
// Nothing is diffed until the session re-renders once per event.
//
//	count := vango.NewIntSignal(0)
//	double := vango.Derive(func() int { return count.Get() * 2 })
//
//	count.Inc()
//	_ = double.Get() // 2
//
// Readers let a widget take either a plain value or something reactive:
// a *Signal, a *Memo, Static(v) or Derive(fn). Derive recomputes on every
// read; NewMemo caches until a source changes.
//
// Writes inside Batch reach each listener once, when the outermost batch
// ends. Sessions run every handler in a batch, so no render sees half of
// a multi-cell update.
//
// An Owner scopes effects and cleanups to a session. A Ref is filled in
// by the runtime once the element it is bound to is mounted; until then
// Resolve returns ErrRefUnresolved and MustResolve panics.
//
// Every type here is safe for concurrent use. Tracking state is kept per
// goroutine.
package vango
