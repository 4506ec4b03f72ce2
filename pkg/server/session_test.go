package server

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/vango"
	"github.com/vango-dev/tour/pkg/vdom"
)

func counterRoot() vdom.Component {
	count := vango.NewIntSignal(0)
	return vdom.Func(func() *vdom.VNode {
		return vdom.Button(
			vdom.OnClick(func() { count.Inc() }),
			vdom.Textf("Count: %d", count.Get()),
		)
	})
}

// findElement returns the first element with tag whose text is text.
func findElement(root *vdom.VNode, tag, text string) *vdom.VNode {
	var found *vdom.VNode
	vdom.Walk(root, func(n *vdom.VNode) {
		if found == nil && n.Kind == vdom.KindElement && n.Tag == tag && n.TextContent() == text {
			found = n
		}
	})
	return found
}

func mustMount(t *testing.T, root RootFunc) *Session {
	t.Helper()
	s := NewMockSession()
	if err := s.MountRoot("test", root); err != nil {
		t.Fatalf("MountRoot: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestMountRootRendersAndAssignsHIDs(t *testing.T) {
	s := mustMount(t, counterRoot)

	tree := s.Tree()
	if tree.Tag != "div" || tree.Props["id"] != RootElementID {
		t.Fatalf("expected root wrapper div#%s, got %s %v", RootElementID, tree.Tag, tree.Props)
	}
	if tree.HID == "" {
		t.Error("root wrapper should have an HID")
	}

	btn := findElement(tree, "button", "Count: 0")
	if btn == nil {
		t.Fatal("button not rendered")
	}
	if !s.HasHandler(btn.HID, protocol.EventClick) {
		t.Errorf("expected click handler for %s", btn.HID)
	}
	if s.HandlerCount() != 1 {
		t.Errorf("expected 1 handler, got %d", s.HandlerCount())
	}
}

func TestMountRootOnlyOnce(t *testing.T) {
	s := mustMount(t, counterRoot)

	err := s.MountRoot("again", counterRoot)
	if !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("expected ErrAlreadyMounted, got %v", err)
	}
}

func TestMountRootPanicReturnsHandlerError(t *testing.T) {
	s := NewMockSession()
	defer s.Close()

	err := s.MountRoot("broken", func() vdom.Component { panic("setup failed") })
	var herr *HandlerError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HandlerError, got %v", err)
	}
}

func TestDispatchBeforeMount(t *testing.T) {
	s := NewMockSession()
	defer s.Close()

	_, err := s.Dispatch(&protocol.Event{HID: "h1", Type: protocol.EventClick})
	if !errors.Is(err, ErrNotMounted) {
		t.Errorf("expected ErrNotMounted, got %v", err)
	}
}

func TestDispatchClickProducesSetText(t *testing.T) {
	s := mustMount(t, counterRoot)
	btn := findElement(s.Tree(), "button", "Count: 0")

	ev, err := s.Dispatch(&protocol.Event{Seq: 1, HID: btn.HID, Type: protocol.EventClick})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if ev.PatchCount != 1 {
		t.Fatalf("expected 1 patch, got %d", ev.PatchCount)
	}

	p := s.LastPatches()[0]
	if p.Op != vdom.PatchSetText || p.HID != btn.HID || p.Value != "Count: 1" {
		t.Errorf("unexpected patch %+v", p)
	}

	// The button keeps its HID and handler across renders.
	again := findElement(s.Tree(), "button", "Count: 1")
	if again == nil || again.HID != btn.HID {
		t.Fatalf("button HID changed")
	}
	if _, err := s.Dispatch(&protocol.Event{Seq: 2, HID: btn.HID, Type: protocol.EventClick}); err != nil {
		t.Fatalf("second Dispatch: %v", err)
	}
	if findElement(s.Tree(), "button", "Count: 2") == nil {
		t.Error("expected Count: 2")
	}
}

func TestDispatchUnknownHandler(t *testing.T) {
	s := mustMount(t, counterRoot)

	_, err := s.Dispatch(&protocol.Event{HID: "h999", Type: protocol.EventClick})
	if !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("expected ErrHandlerNotFound, got %v", err)
	}
}

func TestDispatchWithoutChangeSendsNothing(t *testing.T) {
	s := mustMount(t, func() vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			return vdom.Button(vdom.OnClick(func() {}), vdom.Text("noop"))
		})
	})
	btn := findElement(s.Tree(), "button", "noop")

	ev, err := s.Dispatch(&protocol.Event{HID: btn.HID, Type: protocol.EventClick})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if ev.PatchCount != 0 {
		t.Errorf("expected no patches, got %d", ev.PatchCount)
	}
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	ref := vdom.NewNodeRef()
	count := vango.NewIntSignal(0)
	s := mustMount(t, func() vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			return vdom.Div(
				vdom.Button(vdom.OnClick(func() {
					count.Inc()
					_ = ref.MustResolve("<input> to exist")
				}), vdom.Text("boom")),
				vdom.P(vdom.Textf("%d", count.Get())),
			)
		})
	})
	btn := findElement(s.Tree(), "button", "boom")

	_, err := s.Dispatch(&protocol.Event{HID: btn.HID, Type: protocol.EventClick})
	var herr *HandlerError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HandlerError, got %v", err)
	}
	if !errors.Is(err, vango.ErrRefUnresolved) {
		t.Errorf("expected the panic to wrap ErrRefUnresolved, got %v", herr.Panic)
	}

	// The write before the panic was flushed and rendered.
	if findElement(s.Tree(), "p", "1") == nil {
		t.Error("expected re-render after panic")
	}

	// The session keeps handling events.
	if _, err := s.Dispatch(&protocol.Event{HID: btn.HID, Type: protocol.EventClick}); !errors.As(err, &herr) {
		t.Errorf("expected second HandlerError, got %v", err)
	}
	if s.IsClosed() {
		t.Error("session should survive handler panics")
	}
}

func TestInputEventUpdatesControlledValue(t *testing.T) {
	name := vango.NewSignal("Controlled")
	s := mustMount(t, func() vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			return vdom.Div(
				vdom.Input(vdom.Type("text"), vdom.Prop("value", name.Get()),
					vdom.OnInput(func(v string) { name.Set(v) })),
				vdom.P(vdom.Textf("Name is: %s", name.Get())),
			)
		})
	})

	var input *vdom.VNode
	vdom.Walk(s.Tree(), func(n *vdom.VNode) {
		if n.Tag == "input" {
			input = n
		}
	})

	if _, err := s.Dispatch(&protocol.Event{HID: input.HID, Type: protocol.EventInput, Value: "Ada"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if name.Peek() != "Ada" {
		t.Errorf("expected cell Ada, got %q", name.Peek())
	}
	if v, ok := s.LiveValue(input.HID); !ok || v != "Ada" {
		t.Errorf("expected live value Ada, got %q %v", v, ok)
	}

	var sawValue, sawText bool
	for _, p := range s.LastPatches() {
		if p.Op == vdom.PatchSetValue {
			sawValue = true
		}
		if p.Op == vdom.PatchSetText && p.Value == "Name is: Ada" {
			sawText = true
		}
	}
	if sawValue || !sawText {
		t.Errorf("expected SetText and no value echo, got %+v", s.LastPatches())
	}
}

func TestValuePatchesSkipWhatTheClientHolds(t *testing.T) {
	name := vango.NewSignal("Controlled")
	s := mustMount(t, func() vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			return vdom.Div(
				vdom.Input(vdom.OnInput(name.Set), vdom.Prop("value", name.Get())),
				vdom.Button(vdom.OnClick(func() { name.Set("") }), vdom.Text("clear")),
			)
		})
	})
	input := findElement(s.Tree(), "input", "")
	reset := findElement(s.Tree(), "button", "clear")

	valuePatches := func() []string {
		var got []string
		for _, p := range s.LastPatches() {
			if p.Op == vdom.PatchSetValue && p.HID == input.HID {
				got = append(got, p.Value)
			}
		}
		return got
	}

	steps := []struct {
		name string
		ev   *protocol.Event
		want []string
	}{
		{"typing", &protocol.Event{Seq: 1, HID: input.HID, Type: protocol.EventInput, Value: "Ada"}, nil},
		{"reset by the server", &protocol.Event{Seq: 2, HID: reset.HID, Type: protocol.EventClick}, []string{""}},
		{"typing after reset", &protocol.Event{Seq: 3, HID: input.HID, Type: protocol.EventInput, Value: "Ada"}, nil},
	}
	for _, st := range steps {
		if _, err := s.Dispatch(st.ev); err != nil {
			t.Fatalf("%s: Dispatch: %v", st.name, err)
		}
		if got := valuePatches(); !slices.Equal(got, st.want) {
			t.Errorf("%s: value patches = %q, want %q", st.name, got, st.want)
		}
		s.lastPatches = nil
	}
}

func TestSubmitReadsRefValueAndPreventsDefault(t *testing.T) {
	submitted := vango.NewSignal("Uncontrolled")
	input := vdom.NewNodeRef()
	calls := 0

	s := mustMount(t, func() vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			return vdom.Div(
				vdom.Form(
					vdom.OnSubmit(vango.PreventDefault(func(ev *vdom.SubmitEvent) {
						calls++
						ev.PreventDefault()
						submitted.Set(input.MustResolve("<input> to exist").Value())
					})),
					vdom.Input(vdom.Type("text"), vdom.Value(submitted.Peek()), vdom.Ref(input)),
					vdom.Input(vdom.Type("submit"), vdom.Value("Submit")),
				),
				vdom.P(vdom.Textf("Name Two is: %s", submitted.Get())),
			)
		})
	})

	el, err := input.Resolve()
	if err != nil {
		t.Fatalf("ref not bound after mount: %v", err)
	}
	if el.Tag() != "input" || el.Value() != "Uncontrolled" {
		t.Fatalf("unexpected element %s %q", el.Tag(), el.Value())
	}

	var form *vdom.VNode
	vdom.Walk(s.Tree(), func(n *vdom.VNode) {
		if n.Tag == "form" {
			form = n
		}
	})

	ev, err := s.Dispatch(&protocol.Event{
		HID:    form.HID,
		Type:   protocol.EventSubmit,
		Fields: map[string]string{el.HID(): "Grace"},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected handler to run once, got %d", calls)
	}
	if !ev.Prevented {
		t.Error("expected default action prevented")
	}
	if submitted.Peek() != "Grace" {
		t.Errorf("expected submitted Grace, got %q", submitted.Peek())
	}
	if findElement(s.Tree(), "p", "Name Two is: Grace") == nil {
		t.Error("expected paragraph to show submitted value")
	}
}

func TestRefClearedWhenElementLeaves(t *testing.T) {
	show := vango.NewSignal(true)
	ref := vdom.NewNodeRef()

	s := mustMount(t, func() vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			return vdom.Div(
				vdom.Button(vdom.OnClick(func() { show.Set(false) }), vdom.Text("hide")),
				vdom.If(show.Get(), vdom.Input(vdom.Ref(ref))),
			)
		})
	})
	if !ref.IsSet() {
		t.Fatal("ref should be bound")
	}

	btn := findElement(s.Tree(), "button", "hide")
	if _, err := s.Dispatch(&protocol.Event{HID: btn.HID, Type: protocol.EventClick}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if _, err := ref.Resolve(); !errors.Is(err, vango.ErrRefUnresolved) {
		t.Errorf("expected ErrRefUnresolved after unmount, got %v", err)
	}
}

func TestKeyedRowsKeepHandlers(t *testing.T) {
	type row struct {
		id    int
		count *vango.IntSignal
	}
	rows := vango.NewSignal([]row{})
	for i := 0; i < 3; i++ {
		rows.Update(func(rs []row) []row {
			return append(rs, row{id: i, count: vango.NewIntSignal(i + 1)})
		})
	}

	s := mustMount(t, func() vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			return vdom.Ul(vdom.For(rows.Get(), func(r row) string { return strconv.Itoa(r.id) }, func(r row) *vdom.VNode {
				return vdom.Li(
					vdom.Button(vdom.OnClick(func() { r.count.Inc() }), vdom.Textf("%d", r.count.Get())),
					vdom.Button(vdom.OnClick(func() {
						rows.Update(func(rs []row) []row {
							out := rs[:0:0]
							for _, x := range rs {
								if x.id != r.id {
									out = append(out, x)
								}
							}
							return out
						})
					}), vdom.Text("Remove")),
				)
			}))
		})
	})

	third := findElement(s.Tree(), "button", "3")
	var removeMiddle *vdom.VNode
	vdom.Walk(s.Tree(), func(n *vdom.VNode) {
		if n.Tag == "li" && n.Key == "1" {
			removeMiddle = n.Children[1]
		}
	})

	if _, err := s.Dispatch(&protocol.Event{HID: removeMiddle.HID, Type: protocol.EventClick}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.Dispatch(&protocol.Event{HID: third.HID, Type: protocol.EventClick}); err != nil {
		t.Fatalf("increment: %v", err)
	}

	after := findElement(s.Tree(), "button", "4")
	if after == nil || after.HID != third.HID {
		t.Fatalf("expected the third row's button to keep HID %s", third.HID)
	}
	if findElement(s.Tree(), "button", "2") != nil {
		t.Error("removed row still rendered")
	}
}

func TestHandlersRunInNamedTransaction(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	vango.DebugMode = true
	t.Cleanup(func() {
		slog.SetDefault(prev)
		vango.DebugMode = false
	})

	s := mustMount(t, counterRoot)
	btn := findElement(s.Tree(), "button", "Count: 0")
	if _, err := s.Dispatch(&protocol.Event{HID: btn.HID, Type: protocol.EventClick}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	for _, want := range []string{`msg="tx start" name=click`, `msg="tx end" name=click`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q:\n%s", want, buf.String())
		}
	}
}

func TestEffectsFlushAfterHandler(t *testing.T) {
	count := vango.NewIntSignal(0)
	seen := 0
	s := mustMount(t, func() vdom.Component {
		vango.CreateEffect(func() vango.Cleanup {
			seen = count.Get()
			return nil
		})
		return vdom.Func(func() *vdom.VNode {
			return vdom.Button(vdom.OnClick(func() { count.Inc() }), vdom.Text("inc"))
		})
	})
	btn := findElement(s.Tree(), "button", "inc")

	if _, err := s.Dispatch(&protocol.Event{HID: btn.HID, Type: protocol.EventClick}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if seen != 1 {
		t.Errorf("expected effect to observe 1, got %d", seen)
	}
}

func TestMiddlewareWrapsEvent(t *testing.T) {
	s := mustMount(t, counterRoot)

	var order []string
	var patches int
	s.Use(
		func(ev *Event, next func() error) error {
			order = append(order, "outer")
			err := next()
			patches = ev.PatchCount
			return err
		},
		func(ev *Event, next func() error) error {
			order = append(order, "inner")
			return next()
		},
	)

	btn := findElement(s.Tree(), "button", "Count: 0")
	if _, err := s.Dispatch(&protocol.Event{HID: btn.HID, Type: protocol.EventClick}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("unexpected middleware order %v", order)
	}
	if patches != 1 {
		t.Errorf("expected middleware to observe 1 patch, got %d", patches)
	}
}

func TestRenderDropsStaleSubscriptions(t *testing.T) {
	show := vango.NewSignal(true)
	detail := vango.NewIntSignal(0)
	s := mustMount(t, func() vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			if !show.Get() {
				return vdom.Button(vdom.OnClick(func() { show.Set(true) }), vdom.Text("show"))
			}
			return vdom.Button(vdom.OnClick(func() { show.Set(false) }), vdom.Textf("hide %d", detail.Get()))
		})
	})
	if n := detail.Subscribers(); n != 1 {
		t.Fatalf("detail subscribers = %d, want 1", n)
	}

	btn := findElement(s.Tree(), "button", "hide 0")
	if _, err := s.Dispatch(&protocol.Event{HID: btn.HID, Type: protocol.EventClick}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n := detail.Subscribers(); n != 0 {
		t.Errorf("detail subscribers after hiding = %d, want 0", n)
	}
	detail.Set(5)
	if s.dirty.Load() {
		t.Error("a signal the last render did not read marked the session dirty")
	}

	s.Close()
	if n := show.Subscribers(); n != 0 {
		t.Errorf("show subscribers after close = %d, want 0", n)
	}
}

func TestCloseDisposesOwner(t *testing.T) {
	cleaned := false
	s := NewMockSession()
	if err := s.MountRoot("test", func() vdom.Component {
		vango.CreateEffect(func() vango.Cleanup {
			return func() { cleaned = true }
		})
		return counterRoot()
	}); err != nil {
		t.Fatalf("MountRoot: %v", err)
	}

	s.Close()
	s.Close()

	if !cleaned {
		t.Error("expected cleanup on close")
	}
	if !s.Owner().IsDisposed() {
		t.Error("expected owner disposed")
	}
	if _, err := s.Dispatch(&protocol.Event{HID: "h1", Type: protocol.EventClick}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}
