package vdom

import "strings"

// VKind says whether a node is an element, a text node or a fragment.
type VKind uint8

const (
	KindElement VKind = iota
	KindText
	KindFragment // flattened into the parent when built
)

func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	}
	return "Unknown"
}

// VNode is one node of a rendered tree. A session keeps the last tree it
// sent and diffs each new render against it.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props
	Children []*VNode

	// Key identifies a row of a keyed list across renders. See For.
	Key string

	// Text is the content of a KindText node.
	Text string

	// HID is the hydration ID, written as data-hid. Patches address
	// elements by it.
	HID string
}

// Props holds an element's attributes, live properties ("prop:" prefix),
// event handlers ("on" prefix) and its NodeRef ("ref").
type Props map[string]any

// Handler returns the handler bound to event, such as "click" or "submit".
func (v *VNode) Handler(event string) (any, bool) {
	if v == nil {
		return nil, false
	}
	h := v.Props["on"+event]
	return h, h != nil
}

// TextContent concatenates the text of every descendant text node.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	var sb strings.Builder
	Walk(v, func(n *VNode) {
		if n.Kind == KindText {
			sb.WriteString(n.Text)
		}
	})
	return sb.String()
}

// Attr is one attribute or live property passed to an element
// constructor. The zero Attr is ignored, which lets ClassIf and AttrIf
// return nothing.
type Attr struct {
	Key   string
	Value any
}

// EventHandler binds a handler to an element event. Build one with OnClick,
// OnInput, OnChange or OnSubmit.
type EventHandler struct {
	Event   string // "onclick", "oninput", ...
	Handler any
}

// Component is anything that renders to a VNode. Widgets are components:
// their Render reads signals, and the session re-renders them when one of
// those signals changes.
type Component interface {
	Render() *VNode
}

// RenderFunc is a Component backed by a plain function.
type RenderFunc func() *VNode

// Render calls f.
func (f RenderFunc) Render() *VNode { return f() }

// Func wraps render as a Component.
func Func(render func() *VNode) Component {
	return RenderFunc(render)
}
