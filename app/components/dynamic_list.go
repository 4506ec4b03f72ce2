package components

import (
	"slices"
	"strconv"

	"github.com/vango-dev/tour/pkg/vango"
	. "github.com/vango-dev/tour/pkg/vdom"
)

// CounterEntry is one row of a DynamicList.
type CounterEntry struct {
	ID    int
	Count *vango.IntSignal
}

// DynamicList is a list of counters that can grow and shrink. Each row
// keeps a stable ID for the lifetime of the list; IDs are never reused.
type DynamicList struct {
	counters *vango.Signal[[]CounterEntry]
	nextID   int
}

// NewDynamicList creates initialLength counters with IDs 0 through
// initialLength-1, each valued ID+1.
func NewDynamicList(initialLength int) *DynamicList {
	initialLength = max(initialLength, 0)

	entries := make([]CounterEntry, 0, initialLength)
	for id := 0; id < initialLength; id++ {
		entries = append(entries, CounterEntry{ID: id, Count: vango.NewIntSignal(id + 1)})
	}

	return &DynamicList{
		counters: vango.NewSignal(entries).WithEquals(sameEntries),
		nextID:   initialLength,
	}
}

// Add appends a counter valued one more than its ID.
func (l *DynamicList) Add() {
	entry := CounterEntry{ID: l.nextID, Count: vango.NewIntSignal(l.nextID + 1)}
	l.counters.Update(func(entries []CounterEntry) []CounterEntry {
		return append(slices.Clip(entries), entry)
	})
	l.nextID++
}

// Increment increments the counter with the given ID. Unknown IDs are
// ignored.
func (l *DynamicList) Increment(id int) {
	for _, e := range l.counters.Peek() {
		if e.ID == id {
			e.Count.Inc()
			return
		}
	}
}

// Remove removes the counter with the given ID. Removing an ID that is not
// in the list changes nothing.
func (l *DynamicList) Remove(id int) {
	l.counters.Update(func(entries []CounterEntry) []CounterEntry {
		i := slices.IndexFunc(entries, func(e CounterEntry) bool { return e.ID == id })
		if i < 0 {
			return entries
		}
		return slices.Delete(slices.Clone(entries), i, i+1)
	})
}

// Entries returns the rows in display order.
func (l *DynamicList) Entries() []CounterEntry {
	return slices.Clone(l.counters.Peek())
}

// IDs returns the row IDs in display order.
func (l *DynamicList) IDs() []int {
	entries := l.counters.Peek()
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// Values returns the row values in display order.
func (l *DynamicList) Values() []int {
	entries := l.counters.Peek()
	values := make([]int, len(entries))
	for i, e := range entries {
		values[i] = e.Count.Peek()
	}
	return values
}

// Render implements vdom.Component.
func (l *DynamicList) Render() *VNode {
	return Div(
		Button(OnClick(l.Add), Text("Add Counter")),
		Ul(For(l.counters.Get(), entryKey, l.row)),
	)
}

func (l *DynamicList) row(e CounterEntry) *VNode {
	return Li(
		Button(OnClick(e.Count.Inc), Textf("%d", e.Count.Get())),
		Button(OnClick(func() { l.Remove(e.ID) }), Text("Remove")),
	)
}

func entryKey(e CounterEntry) string {
	return strconv.Itoa(e.ID)
}

// sameEntries compares rows by identity. Counter values are tracked by
// their own signals.
func sameEntries(a, b []CounterEntry) bool {
	return slices.EqualFunc(a, b, func(x, y CounterEntry) bool {
		return x.ID == y.ID && x.Count == y.Count
	})
}
