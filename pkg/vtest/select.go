package vtest

import (
	"fmt"
	"strings"

	"github.com/vango-dev/tour/pkg/vdom"
)

// Selector locates one element in a rendered tree.
type Selector struct {
	desc string
	find func(root *vdom.VNode) *vdom.VNode
}

// String describes the selector for failure messages.
func (s Selector) String() string {
	return s.desc
}

// Find returns the first matching element under root, or nil.
func (s Selector) Find(root *vdom.VNode) *vdom.VNode {
	if s.find == nil {
		return nil
	}
	return s.find(root)
}

// Match selects the first element, in document order, for which fn
// returns true.
func Match(desc string, fn func(*vdom.VNode) bool) Selector {
	return Selector{desc: desc, find: func(root *vdom.VNode) *vdom.VNode {
		var found *vdom.VNode
		vdom.Walk(root, func(n *vdom.VNode) {
			if found == nil && n.Kind == vdom.KindElement && fn(n) {
				found = n
			}
		})
		return found
	}}
}

// ByText selects the first element whose own text children read text,
// ignoring surrounding whitespace.
//
//	h.Click(vtest.ByText("Add Counter"))
func ByText(text string) Selector {
	return Match(fmt.Sprintf("text %q", text), func(n *vdom.VNode) bool {
		return ownText(n) == text
	})
}

// ByTag selects the first element with the given tag.
func ByTag(tag string) Selector {
	return ByTagIndex(tag, 0)
}

// ByTagIndex selects the i-th element (zero-based) with the given tag.
func ByTagIndex(tag string, i int) Selector {
	desc := fmt.Sprintf("<%s>[%d]", tag, i)
	return Selector{desc: desc, find: func(root *vdom.VNode) *vdom.VNode {
		seen := 0
		var found *vdom.VNode
		vdom.Walk(root, func(n *vdom.VNode) {
			if found != nil || n.Kind != vdom.KindElement || n.Tag != tag {
				return
			}
			if seen == i {
				found = n
			}
			seen++
		})
		return found
	}}
}

// ByKey selects the element rendered with the given reconciliation key.
func ByKey(key string) Selector {
	return Match(fmt.Sprintf("key %q", key), func(n *vdom.VNode) bool {
		return n.Key == key
	})
}

// ByHID selects the element with the given hydration ID.
func ByHID(hid string) Selector {
	return Selector{desc: "hid " + hid, find: func(root *vdom.VNode) *vdom.VNode {
		return vdom.FindByHID(root, hid)
	}}
}

// Within narrows child to the subtree of the element parent selects.
//
//	vtest.Within(vtest.ByKey("2"), vtest.ByText("Remove"))
func Within(parent, child Selector) Selector {
	return Selector{
		desc: parent.desc + " > " + child.desc,
		find: func(root *vdom.VNode) *vdom.VNode {
			scope := parent.Find(root)
			if scope == nil {
				return nil
			}
			return child.Find(scope)
		},
	}
}

func ownText(n *vdom.VNode) string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Kind == vdom.KindText {
			sb.WriteString(c.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
