package protocol

import (
	"testing"

	"github.com/vango-dev/tour/pkg/vdom"
)

func TestFromVDOMEncodesInsertedNode(t *testing.T) {
	gen := vdom.NewHIDGenerator()
	prev := vdom.Ul()
	vdom.AssignHIDs(prev, gen)

	next := vdom.Ul(vdom.Li(vdom.Key(0), vdom.Button(vdom.OnClick(func() {}), vdom.Text("1"))))
	patches := vdom.Diff(prev, next)
	vdom.AssignHIDs(next, gen)

	wire := FromVDOM(patches)
	if len(wire) != 1 {
		t.Fatalf("expected 1 patch, got %d", len(wire))
	}
	p := wire[0]
	if p.Op != vdom.PatchInsertNode || p.Parent != prev.HID || p.Index != 0 {
		t.Errorf("got %+v", p)
	}
	if p.Node == nil || p.Node.Tag != "li" || p.Node.HID == "" {
		t.Fatalf("unexpected node %+v", p.Node)
	}
	button := p.Node.Children[0]
	if button.Attrs["data-on-click"] != "true" || button.HID == "" {
		t.Errorf("button = %+v", button)
	}
	if button.Children[0].Text != "1" {
		t.Errorf("button text = %q", button.Children[0].Text)
	}
}

func TestPatchesRoundTrip(t *testing.T) {
	in := &PatchesFrame{
		Seq: 2,
		Patches: []Patch{
			{Op: vdom.PatchSetText, HID: "h3", Value: "2"},
			{Op: vdom.PatchRemoveNode, HID: "h9"},
		},
	}
	data, err := EncodePatches(in)
	if err != nil {
		t.Fatal(err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	out, err := DecodePatches(f)
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	if out.Seq != 2 || len(out.Patches) != 2 || out.Patches[1].Op != vdom.PatchRemoveNode {
		t.Errorf("got %+v", out)
	}
}

func TestErrorMessageEncode(t *testing.T) {
	data, err := EncodeErrorMessage(&ErrorMessage{Code: ErrHandlerPanic, Message: "boom"})
	if err != nil {
		t.Fatal(err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	em, err := DecodeErrorMessage(f)
	if err != nil {
		t.Fatal(err)
	}
	if em.Code != ErrHandlerPanic || em.Code.String() != "HandlerPanic" {
		t.Errorf("got %+v", em)
	}
}

func TestErrorCodeString(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrEventDropped:   "EventDropped",
		ErrSessionLimit:   "SessionLimit",
		ErrServerError:    "ServerError",
		ErrUnknown:        "Unknown",
		ErrorCode(0x0999): "Unknown",
	}
	for code, want := range tests {
		if got := code.String(); got != want {
			t.Errorf("%#04x.String() = %q, want %q", uint16(code), got, want)
		}
	}

	em := &ErrorMessage{Code: ErrSessionLimit, Message: "server: max sessions reached"}
	if got := em.Error(); got != "protocol: SessionLimit: server: max sessions reached" {
		t.Errorf("Error() = %q", got)
	}
}
