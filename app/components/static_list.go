package components

import (
	"github.com/vango-dev/tour/pkg/vango"
	. "github.com/vango-dev/tour/pkg/vdom"
)

// StaticList is a fixed list of independent counters. Rows can be
// incremented but never added or removed.
type StaticList struct {
	counters []*vango.IntSignal
}

// NewStaticList creates length counters valued 1 through length.
// A non-positive length gives an empty list.
func NewStaticList(length int) *StaticList {
	l := &StaticList{}
	for i := 1; i <= length; i++ {
		l.counters = append(l.counters, vango.NewIntSignal(i))
	}
	return l
}

// Len returns the number of rows.
func (l *StaticList) Len() int {
	return len(l.counters)
}

// Increment increments row i. Out of range rows are ignored.
func (l *StaticList) Increment(i int) {
	if i < 0 || i >= len(l.counters) {
		return
	}
	l.counters[i].Inc()
}

// Values returns the current value of every row.
func (l *StaticList) Values() []int {
	values := make([]int, len(l.counters))
	for i, c := range l.counters {
		values[i] = c.Peek()
	}
	return values
}

// Render implements vdom.Component.
func (l *StaticList) Render() *VNode {
	return Ul(Range(l.counters, func(c *vango.IntSignal, _ int) *VNode {
		return Li(Button(OnClick(c.Inc), Textf("%d", c.Get())))
	}))
}
