package vango

import "sync/atomic"

var lastID atomic.Uint64

// nextID returns a process-wide unique ID for a signal, memo, effect,
// owner or listener. IDs start at 1 and are never reused.
func nextID() uint64 {
	return lastID.Add(1)
}
