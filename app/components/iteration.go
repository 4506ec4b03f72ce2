package components

import (
	. "github.com/vango-dev/tour/pkg/vdom"
)

// Iteration shows a static and a dynamic list side by side.
type Iteration struct {
	Static  *StaticList
	Dynamic *DynamicList
}

// NewIteration creates both lists with five rows each.
func NewIteration() *Iteration {
	return &Iteration{
		Static:  NewStaticList(5),
		Dynamic: NewDynamicList(5),
	}
}

// Render implements vdom.Component.
func (it *Iteration) Render() *VNode {
	return Fragment(
		H1(Text("Iteration")),
		H2(Text("Static List")),
		P(Text("Use this pattern if the list itself is static.")),
		it.Static,
		H2(Text("Dynamic List")),
		P(Text("Use this pattern if the rows in your list will change.")),
		it.Dynamic,
	)
}

// AppTwo is the iteration root.
func AppTwo() Component {
	return NewIteration()
}
