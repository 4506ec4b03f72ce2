package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/render"
	"github.com/vango-dev/tour/pkg/server"
	"github.com/vango-dev/tour/pkg/vdom"
)

// Harness drives a mounted root widget the way the browser client would,
// without a network connection.
type Harness struct {
	t       testing.TB
	session *server.Session

	seq         uint64
	patches     []vdom.Patch
	navigations int
}

// Mount mounts root on a fresh mock session. The session is closed when
// the test ends.
//
//	h := vtest.Mount(t, components.AppOne)
//	h.Click(vtest.ByText("Click me"))
//	h.ExpectContains(`class="red"`)
func Mount(t testing.TB, root server.RootFunc) *Harness {
	t.Helper()
	return MountNamed(t, "test", root)
}

// MountNamed is Mount with an explicit root name.
func MountNamed(t testing.TB, name string, root server.RootFunc) *Harness {
	t.Helper()

	s := server.NewMockSession()
	t.Cleanup(s.Close)

	if err := s.MountRoot(name, root); err != nil {
		t.Fatalf("vtest: mount %s: %v", name, err)
	}
	return &Harness{t: t, session: s}
}

// Session returns the underlying session.
func (h *Harness) Session() *server.Session {
	return h.session
}

// Tree returns the current rendered tree.
func (h *Harness) Tree() *vdom.VNode {
	return h.session.Tree()
}

// HTML renders the current tree.
func (h *Harness) HTML() string {
	h.t.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(h.session.Tree())
	if err != nil {
		h.t.Fatalf("vtest: render: %v", err)
	}
	return html
}

// Find returns the element sel selects, or nil.
func (h *Harness) Find(sel Selector) *vdom.VNode {
	return sel.Find(h.session.Tree())
}

// MustFind returns the element sel selects and fails the test if there is
// none.
func (h *Harness) MustFind(sel Selector) *vdom.VNode {
	h.t.Helper()
	n := h.Find(sel)
	if n == nil {
		h.t.Fatalf("vtest: no element matches %s in:\n%s", sel, truncate(h.HTML(), 500))
	}
	return n
}

// Text returns the text content of the element sel selects.
func (h *Harness) Text(sel Selector) string {
	h.t.Helper()
	return h.MustFind(sel).TextContent()
}

// Value returns the live value of a form control: what the user typed, or
// the rendered value if nothing was typed.
func (h *Harness) Value(sel Selector) string {
	h.t.Helper()
	return h.fieldValue(h.MustFind(sel))
}

// Patches returns the patches produced by the last event, or nil if it
// changed nothing.
func (h *Harness) Patches() []vdom.Patch {
	return h.patches
}

// Navigations returns how many submits went through without their default
// action being suppressed. In a browser each of them would have reloaded
// the page.
func (h *Harness) Navigations() int {
	return h.navigations
}

// Click clicks the element sel selects.
func (h *Harness) Click(sel Selector) {
	h.t.Helper()
	h.must(h.Fire(sel, protocol.EventClick, ""))
}

// Input sets the value of a form control and fires an input event, as
// typing into it does.
func (h *Harness) Input(sel Selector, text string) {
	h.t.Helper()
	h.must(h.Fire(sel, protocol.EventInput, text))
}

// Type changes the live value of a form control without firing any event.
// Use it for uncontrolled inputs that carry no input handler.
func (h *Harness) Type(sel Selector, text string) {
	h.t.Helper()
	n := h.MustFind(sel)
	h.session.SetLiveValue(n.HID, text)
}

// Submit submits the form sel selects.
func (h *Harness) Submit(sel Selector) {
	h.t.Helper()
	h.must(h.TrySubmit(sel))
}

// TrySubmit submits the form sel selects and returns the handler error
// instead of failing the test.
func (h *Harness) TrySubmit(sel Selector) (*server.Event, error) {
	h.t.Helper()
	form := h.MustFind(sel)

	if !h.session.HasHandler(form.HID, protocol.EventSubmit) {
		h.navigations++
		h.patches = nil
		return nil, nil
	}

	fields := make(map[string]string)
	vdom.Walk(form, func(n *vdom.VNode) {
		if isField(n) {
			fields[n.HID] = h.fieldValue(n)
		}
	})

	ev, err := h.dispatch(&protocol.Event{
		HID:    form.HID,
		Type:   protocol.EventSubmit,
		Fields: fields,
	})
	if ev != nil && !ev.Prevented {
		h.navigations++
	}
	return ev, err
}

// Fire dispatches an event of type et to the element sel selects.
func (h *Harness) Fire(sel Selector, et protocol.EventType, value string) (*server.Event, error) {
	h.t.Helper()
	n := h.MustFind(sel)
	return h.dispatch(&protocol.Event{HID: n.HID, Type: et, Value: value})
}

func (h *Harness) dispatch(pe *protocol.Event) (*server.Event, error) {
	h.seq++
	pe.Seq = h.seq

	ev, err := h.session.Dispatch(pe)
	h.patches = nil
	if ev != nil && ev.PatchCount > 0 {
		h.patches = h.session.LastPatches()
	}
	return ev, err
}

func (h *Harness) must(_ *server.Event, err error) {
	h.t.Helper()
	if err != nil {
		h.t.Fatalf("vtest: %v", err)
	}
}

func (h *Harness) fieldValue(n *vdom.VNode) string {
	if v, ok := h.session.LiveValue(n.HID); ok {
		return v
	}
	if v, ok := vdom.LiveProps(n)["value"]; ok {
		return v
	}
	if v, ok := vdom.EffectiveAttrs(n)["value"]; ok {
		return v
	}
	return n.TextContent()
}

func isField(n *vdom.VNode) bool {
	switch n.Tag {
	case "textarea", "select":
		return true
	case "input":
		t, _ := n.Props["type"].(string)
		return t != "submit" && t != "button" && t != "reset"
	}
	return false
}

// ExpectContains fails the test if the rendered HTML lacks expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains fails the test if the rendered HTML contains unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// RenderToString renders a VNode without a session. Components are
// expanded inline; no hydration IDs are assigned.
func RenderToString(node *vdom.VNode) string {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
