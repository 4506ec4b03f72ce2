package components

import (
	"github.com/vango-dev/tour/pkg/vango"
	. "github.com/vango-dev/tour/pkg/vdom"
)

// Counter is a button that counts its clicks, drawn three ways as progress
// bars. The button is styled red while the count is odd.
type Counter struct {
	Count  *vango.IntSignal
	Double *vango.Derived[int]

	odd *vango.Memo[bool]
}

// NewCounter creates a Counter starting at zero.
func NewCounter() *Counter {
	count := vango.NewIntSignal(0)
	return &Counter{
		Count:  count,
		Double: vango.Derive(func() int { return count.Get() * 2 }),
		odd:    vango.NewMemo(func() bool { return count.Get()%2 == 1 }),
	}
}

// Increment adds one to the count.
func (c *Counter) Increment() {
	c.Count.Inc()
}

// Odd reports whether the count is odd.
func (c *Counter) Odd() bool {
	return c.odd.Get()
}

// Render implements vdom.Component.
func (c *Counter) Render() *VNode {
	return Fragment(
		Button(
			OnClick(c.Increment),
			ClassIf(c.Odd(), "red"),
			Text("Click me"),
		),
		Br(),
		ProgressBar(ProgressBarProps{Max: 50, Progress: c.Count}),
		ProgressBar(ProgressBarProps{Progress: c.Count}),
		ProgressBar(ProgressBarProps{Max: 50, Progress: c.Double}),
	)
}

// AppOne is the counter root.
func AppOne() Component {
	return NewCounter()
}
