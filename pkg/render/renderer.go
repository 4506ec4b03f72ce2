package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/tour/pkg/vdom"
)

// RendererConfig configures a Renderer.
type RendererConfig struct {
	// Pretty indents nested block elements. The extra whitespace becomes
	// text nodes in the browser, so pretty output is for reading only and
	// must not be served to a live client.
	Pretty bool

	// Indent is one level of indentation. Default two spaces.
	Indent string
}

// Renderer writes VNode trees as HTML.
//
// Hydration IDs are written as they are found on the nodes. Sessions
// assign them before rendering so the HTML and the live tree agree.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders node to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var sb strings.Builder
	if err := r.RenderToWriter(&sb, node); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderToWriter streams node to w and returns the first write error.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	hw := &htmlWriter{w: w, config: r.config}
	hw.node(node, 0)
	return hw.err
}

// htmlWriter holds the first error and turns later writes into no-ops.
type htmlWriter struct {
	w      io.Writer
	config RendererConfig
	err    error
}

func (hw *htmlWriter) str(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

func (hw *htmlWriter) newline() {
	if hw.config.Pretty {
		hw.str("\n")
	}
}

func (hw *htmlWriter) pad(depth int) {
	if hw.config.Pretty && depth > 0 {
		hw.str(strings.Repeat(hw.config.Indent, depth))
	}
}

func (hw *htmlWriter) node(n *vdom.VNode, depth int) {
	if n == nil || hw.err != nil {
		return
	}
	switch n.Kind {
	case vdom.KindElement:
		hw.element(n, depth)
	case vdom.KindText:
		hw.str(escapeHTML(n.Text))
	case vdom.KindFragment:
		for _, c := range n.Children {
			hw.node(c, depth)
		}
	default:
		hw.err = fmt.Errorf("render: unknown node kind: %d", n.Kind)
	}
}

func (hw *htmlWriter) element(n *vdom.VNode, depth int) {
	hw.pad(depth)
	hw.str("<" + n.Tag)
	hw.attributes(n)
	if n.HID != "" {
		hw.str(` data-hid="` + escapeAttr(n.HID) + `"`)
	}
	hw.str(">")

	if vdom.IsVoidElement(n.Tag) {
		hw.newline()
		return
	}

	block := len(n.Children) > 0 && !isInlineElement(n.Tag) && !hasOnlyText(n)
	if block {
		hw.newline()
	}
	for _, c := range n.Children {
		hw.node(c, depth+1)
	}
	if block {
		hw.pad(depth)
	}
	hw.str("</" + n.Tag + ">")
	hw.newline()
}

// attributes writes the element's attributes in name order. A live
// property is written as the attribute of the same name for the first
// paint unless that attribute is set explicitly.
func (hw *htmlWriter) attributes(n *vdom.VNode) {
	attrs := vdom.EffectiveAttrs(n)
	if attrs == nil {
		attrs = make(map[string]string)
	}
	for name, value := range vdom.LiveProps(n) {
		if _, set := attrs[name]; !set {
			attrs[name] = value
		}
	}

	for _, name := range vdom.SortedKeys(attrs) {
		if vdom.IsBooleanAttr(name) {
			hw.str(" " + name)
			continue
		}
		hw.str(" " + name + `="` + escapeAttr(attrs[name]) + `"`)
	}
}

func hasOnlyText(n *vdom.VNode) bool {
	for _, c := range n.Children {
		if c.Kind != vdom.KindText {
			return false
		}
	}
	return true
}
