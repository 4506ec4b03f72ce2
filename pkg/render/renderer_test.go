package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/tour/pkg/vango"
	"github.com/vango-dev/tour/pkg/vdom"
)

func renderString(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	html, err := NewRenderer(RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return html
}

func TestRenderElements(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"empty div", vdom.Div(), "<div></div>"},
		{"text", vdom.P(vdom.Text("hello")), "<p>hello</p>"},
		{"void", vdom.Br(), "<br>"},
		{"sorted attributes", vdom.Progress(vdom.ProgressValue(3), vdom.Max(50)), `<progress max="50" value="3"></progress>`},
		{"boolean attribute", vdom.Input(vdom.Disabled(), vdom.Type("text")), `<input disabled type="text">`},
		{"escaped text", vdom.P(vdom.Text("<b>&</b>")), "<p>&lt;b&gt;&amp;&lt;/b&gt;</p>"},
		{"escaped attribute", vdom.Input(vdom.Value(`a"b`)), `<input value="a&quot;b">`},
		{"empty list", vdom.Ul(), "<ul></ul>"},
		{"fragment", vdom.Fragment(vdom.Li(), vdom.Li()), "<li></li><li></li>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderString(t, tt.node); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderHIDsAndEventMarkers(t *testing.T) {
	node := vdom.Form(
		vdom.OnSubmit(vango.PreventDefault(func(*vdom.SubmitEvent) {})),
		vdom.Button(vdom.OnClick(func() {}), vdom.Text("go")),
	)
	vdom.AssignHIDs(node, vdom.NewHIDGenerator())

	got := renderString(t, node)
	want := `<form data-on-submit="true" data-pd-submit="true" data-hid="h1">` +
		`<button data-on-click="true" data-hid="h2">go</button></form>`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestRenderLivePropAsAttribute(t *testing.T) {
	got := renderString(t, vdom.Input(vdom.Type("text"), vdom.Prop("value", "Controlled")))
	want := `<input type="text" value="Controlled">`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRenderSkipsRefAndKey(t *testing.T) {
	ref := vdom.NewNodeRef()
	got := renderString(t, vdom.Li(vdom.Key(3), vdom.Input(vdom.Ref(ref))))
	if got != "<li><input></li>" {
		t.Errorf("got %s", got)
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	html, err := r.RenderToString(vdom.Div(vdom.P(vdom.Text("a")), vdom.Br()))
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <p>a</p>\n  <br>\n</div>\n"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderPage(t *testing.T) {
	body := vdom.Div(vdom.ID("app"), vdom.Button(vdom.ClassIf(true, "red"), vdom.Text("Click me")))
	vdom.AssignHIDs(body, vdom.NewHIDGenerator())

	var buf bytes.Buffer
	err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{
		Body:    body,
		Title:   "Tour <form>",
		LiveURL: "/_tour/live?root=form",
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Tour &lt;form&gt;</title>",
		".red { color: red; }",
		`<div id="app" data-hid="h1">`,
		`<button class="red" data-hid="h2">Click me</button>`,
		`<script src="/_tour/client.js" data-live="/_tour/live?root=form" defer></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q\n%s", want, html)
		}
	}
}

func TestRenderStaticPageHasNoClient(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{Body: vdom.Div()}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script") {
		t.Error("static page should not include the client script")
	}
}
