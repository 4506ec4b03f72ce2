package protocol

import "github.com/vango-dev/tour/pkg/vdom"

// VNode is the wire form of an inserted subtree. Text nodes carry only
// Text; elements carry their effective attributes and HID.
type VNode struct {
	Tag      string            `json:"tag,omitempty"`
	Text     string            `json:"text,omitempty"`
	HID      string            `json:"hid,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*VNode          `json:"children,omitempty"`
}

// EncodeVNode converts a vdom subtree to its wire form. Fragments are
// flattened by the element constructors and never reach the wire.
func EncodeVNode(n *vdom.VNode) *VNode {
	if n == nil {
		return nil
	}
	if n.Kind == vdom.KindText {
		return &VNode{Text: n.Text}
	}

	attrs := vdom.EffectiveAttrs(n)
	for name, value := range vdom.LiveProps(n) {
		if attrs == nil {
			attrs = make(map[string]string)
		}
		if _, exists := attrs[name]; !exists {
			attrs[name] = value
		}
	}

	out := &VNode{
		Tag:   n.Tag,
		HID:   n.HID,
		Attrs: attrs,
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, EncodeVNode(child))
	}
	return out
}
