package vango

import (
	"slices"
	"sync"
)

// source is the subscriber list shared by signals and memos.
type source struct {
	id uint64

	mu   sync.RWMutex
	subs []Listener
}

func (s *source) subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.ContainsFunc(s.subs, sameListener(l)) {
		s.subs = append(s.subs, l)
	}
}

func (s *source) unsubscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = slices.DeleteFunc(s.subs, sameListener(l))
}

func (s *source) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// track subscribes the current listener. Memos and effects also record s so
// they can drop the subscription before they run again.
func (s *source) track() {
	l := listening()
	if l == nil {
		return
	}
	s.subscribe(l)
	if d, ok := l.(dependent); ok {
		d.dependsOn(s)
	}
}

// notify marks subscribers dirty, or queues them while a batch is open.
// No lock is held while listeners run.
func (s *source) notify() {
	s.mu.RLock()
	subs := slices.Clone(s.subs)
	s.mu.RUnlock()

	if sc := current(); sc.depth > 0 {
		sc.queued = append(sc.queued, subs...)
		return
	}
	for _, l := range subs {
		l.MarkDirty()
	}
}

func sameListener(l Listener) func(Listener) bool {
	id := l.ID()
	return func(o Listener) bool { return o.ID() == id }
}

// dependent is a listener that re-reads its sources every time it runs.
type dependent interface {
	Listener
	dependsOn(s *source)
}

// deps is the set of sources a memo or effect read on its last run.
type deps struct {
	mu   sync.Mutex
	list []*source
}

func (d *deps) add(s *source) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !slices.Contains(d.list, s) {
		d.list = append(d.list, s)
	}
}

// release unsubscribes l from every recorded source and forgets them.
func (d *deps) release(l Listener) {
	d.mu.Lock()
	list := d.list
	d.list = nil
	d.mu.Unlock()

	for _, s := range list {
		s.unsubscribe(l)
	}
}
