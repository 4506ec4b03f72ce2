package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a text node from a format string.
//
//	P(Textf("Name is: %s", name.Get()))
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups nodes without a wrapper element. A fragment passed to an
// element constructor is flattened into that element's children, so a
// widget can return several siblings.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment, Children: make([]*VNode, 0, len(children))}
	for _, c := range children {
		node.addChild(c)
	}
	return node
}

// addChild appends a child argument. Nodes, node slices, strings and
// components are accepted; anything else, including nil, is skipped.
func (v *VNode) addChild(arg any) {
	switch c := arg.(type) {
	case *VNode:
		v.appendChild(c)
	case []*VNode:
		for _, n := range c {
			v.appendChild(n)
		}
	case string:
		v.Children = append(v.Children, Text(c))
	case Component:
		if c != nil {
			v.appendChild(c.Render())
		}
	}
}

// If returns node when cond holds and nil otherwise.
func If(cond bool, node *VNode) *VNode {
	if cond {
		return node
	}
	return nil
}

// Range maps items to nodes by position. Rows are matched by index when
// the list changes, so use it only for lists whose rows never move; For
// handles lists that gain or lose rows.
//
//	Ul(Range(counters, func(c *vango.IntSignal, _ int) *VNode {
//	    return Li(Button(OnClick(c.Inc), Textf("%d", c.Get())))
//	}))
func Range[T any](items []T, row func(item T, index int) *VNode) []*VNode {
	nodes := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := row(item, i); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// For renders a keyed list. Each row's Key is set to key(item) and the
// diff matches rows by key: a row that stays keeps its DOM node and its
// handlers while rows around it are inserted or removed.
//
//	Ul(For(entries, func(e Entry) string { return strconv.Itoa(e.ID) }, row))
func For[T any](items []T, key func(T) string, row func(T) *VNode) []*VNode {
	nodes := make([]*VNode, 0, len(items))
	for _, item := range items {
		if n := row(item); n != nil {
			n.Key = key(item)
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Key sets a reconciliation key on a single element.
func Key(key any) Attr {
	return Attribute("key", fmt.Sprint(key))
}
