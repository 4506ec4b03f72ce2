package vango

import (
	"runtime"
	"strconv"
	"sync"
)

// scope is the reactive state of one goroutine. Each session runs its
// event loop on its own goroutine, so sessions never see each other's
// listener, owner or batch.
type scope struct {
	owner    *Owner
	listener Listener

	depth  int
	queued []Listener
}

var scopes sync.Map // goroutine id -> *scope

// goid parses the goroutine id from the "goroutine N [running]:" header of
// a stack trace.
func goid() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = b[len("goroutine "):]
	for i, c := range b {
		if c == ' ' {
			b = b[:i]
			break
		}
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}

func current() *scope {
	id := goid()
	if sc, ok := scopes.Load(id); ok {
		return sc.(*scope)
	}
	sc, _ := scopes.LoadOrStore(id, &scope{})
	return sc.(*scope)
}

func listening() Listener { return current().listener }

func owning() *Owner { return current().owner }

// WithOwner runs fn with owner as the current owner. Effects created inside
// fn belong to owner.
func WithOwner(owner *Owner, fn func()) {
	sc := current()
	prev := sc.owner
	sc.owner = owner
	defer func() { sc.owner = prev }()
	fn()
}

// WithListener runs fn with l as the current listener: every signal fn
// reads will notify l when it changes.
func WithListener(l Listener, fn func()) {
	sc := current()
	prev := sc.listener
	sc.listener = l
	defer func() { sc.listener = prev }()
	fn()
}

// Untracked runs fn with no current listener. For a single read Peek is
// clearer.
func Untracked(fn func()) {
	WithListener(nil, fn)
}

// ReleaseGoroutine drops the reactive state of the calling goroutine.
// Session loops call it on exit.
func ReleaseGoroutine() {
	scopes.Delete(goid())
}
