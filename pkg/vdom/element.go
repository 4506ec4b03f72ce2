package vdom

import "github.com/vango-dev/tour/pkg/vango"

// Element is a handle to a mounted element.
type Element interface {
	// HID returns the element's hydration ID.
	HID() string

	// Tag returns the element's tag name.
	Tag() string

	// Value returns the element's live value. For inputs the user has
	// edited this differs from the rendered value attribute.
	Value() string
}

// NodeRef is an optional handle to a mounted element. It is empty until
// the runtime mounts the element it is bound to with Ref.
type NodeRef = vango.Ref[Element]

// NewNodeRef creates an empty NodeRef.
func NewNodeRef() *NodeRef {
	return vango.NewRef[Element](nil)
}

// Ref binds r to the element it is attached to.
//
//	input := vdom.NewNodeRef()
//	Input(Type("text"), Ref(input))
func Ref(r *NodeRef) Attr {
	if r == nil {
		return Attr{}
	}
	return Attribute("ref", r)
}

// ValueSource reports live values of mounted elements by HID.
type ValueSource interface {
	LiveValue(hid string) (string, bool)
}

// boundElement is the Element handed to a NodeRef.
type boundElement struct {
	hid     string
	tag     string
	initial string
	src     ValueSource
}

func (e *boundElement) HID() string { return e.hid }
func (e *boundElement) Tag() string { return e.tag }

func (e *boundElement) Value() string {
	if e.src != nil {
		if v, ok := e.src.LiveValue(e.hid); ok {
			return v
		}
	}
	return e.initial
}

// RefBinder keeps the NodeRefs of a tree bound to their elements across
// renders. A ref whose element leaves the tree is cleared.
type RefBinder struct {
	bound map[*NodeRef]string
}

// NewRefBinder creates an empty RefBinder.
func NewRefBinder() *RefBinder {
	return &RefBinder{bound: make(map[*NodeRef]string)}
}

// Bind sets every NodeRef found in root to its element and clears refs that
// were bound before but are no longer present. HIDs must be assigned.
func (b *RefBinder) Bind(root *VNode, src ValueSource) {
	seen := make(map[*NodeRef]bool)

	Walk(root, func(n *VNode) {
		r, ok := n.Props["ref"].(*NodeRef)
		if !ok || r == nil || n.Kind != KindElement {
			return
		}
		seen[r] = true
		if b.bound[r] == n.HID && r.IsSet() {
			return
		}
		r.Set(&boundElement{
			hid:     n.HID,
			tag:     n.Tag,
			initial: initialValue(n),
			src:     src,
		})
		b.bound[r] = n.HID
	})

	for r := range b.bound {
		if !seen[r] {
			r.Clear()
			delete(b.bound, r)
		}
	}
}

// Release clears every bound ref.
func (b *RefBinder) Release() {
	for r := range b.bound {
		r.Clear()
		delete(b.bound, r)
	}
}

// initialValue is the value an element shows before any user edits.
func initialValue(n *VNode) string {
	if v, ok := n.Props["prop:value"]; ok {
		return propToString(v)
	}
	if v, ok := n.Props["value"]; ok {
		return propToString(v)
	}
	return n.TextContent()
}

// SubmitEvent is passed to submit handlers.
type SubmitEvent struct {
	// Fields maps the HID of each form control to its live value.
	Fields map[string]string

	prevented bool
}

// NewSubmitEvent creates a SubmitEvent. prevented reports whether the
// client already suppressed the browser default action.
func NewSubmitEvent(fields map[string]string, prevented bool) *SubmitEvent {
	if fields == nil {
		fields = make(map[string]string)
	}
	return &SubmitEvent{Fields: fields, prevented: prevented}
}

// PreventDefault records that the default action (navigation) must not run.
func (e *SubmitEvent) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether the default action was suppressed.
func (e *SubmitEvent) DefaultPrevented() bool {
	return e.prevented
}
