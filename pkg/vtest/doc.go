// Package vtest provides a headless harness for testing root widgets.
//
// Mount runs a root on a mock session with no connection. Events are
// dispatched through the same path the WebSocket event loop uses, so
// handlers, batching, re-rendering and keyed diffing all behave as they do
// live.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, components.AppOne)
//	    h.Click(vtest.ByText("Click me"))
//	    h.ExpectContains(`class="red"`)
//	}
//
// # Selectors
//
// Elements are located with selectors that can be nested:
//
//	vtest.ByText("Add Counter")
//	vtest.ByTagIndex("input", 1)
//	vtest.Within(vtest.ByKey("2"), vtest.ByText("Remove"))
//
// # Forms
//
// Input fires an input event, as typing into a controlled field does.
// Type only changes the field's live value, which is what an uncontrolled
// field looks like to the server until its form is submitted:
//
//	h.Type(vtest.ByTagIndex("input", 1), "Grace")
//	h.Submit(vtest.ByTag("form"))
//	if h.Navigations() != 0 {
//	    t.Error("submit should not navigate")
//	}
package vtest
