package vango

import (
	"log/slog"
	"slices"
)

// DebugMode logs named transactions at debug level. Set it before serving;
// it is read without synchronization.
var DebugMode bool

// Batch runs fn and holds back notifications until the outermost batch
// returns. Each dependent is then notified once, however many of its
// sources changed. Notifications are flushed even if fn panics.
//
//	vango.Batch(func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
func Batch(fn func()) {
	sc := current()
	sc.depth++
	defer func() {
		sc.depth--
		if sc.depth == 0 {
			flush(sc)
		}
	}()
	fn()
}

func flush(sc *scope) {
	queued := sc.queued
	sc.queued = nil

	seen := make(map[uint64]struct{}, len(queued))
	queued = slices.DeleteFunc(queued, func(l Listener) bool {
		if _, dup := seen[l.ID()]; dup {
			return true
		}
		seen[l.ID()] = struct{}{}
		return false
	})
	for _, l := range queued {
		l.MarkDirty()
	}
}

// TxNamed is Batch with a name that shows up in debug logs.
func TxNamed(name string, fn func()) {
	if DebugMode {
		slog.Debug("tx start", "name", name)
		defer slog.Debug("tx end", "name", name)
	}
	Batch(fn)
}
