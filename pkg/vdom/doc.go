// Package vdom provides the virtual DOM the tour widgets render to.
//
// The tree lives on the server. After each event the session renders the
// root widget again, diffs the new tree against the previous one and sends
// the resulting patches to the browser.
//
// # Elements
//
// Element functions take attributes, event handlers and children in any
// order. El builds a tag without its own function.
//
//	Div(ID("app"),
//	    Button(OnClick(count.Inc), ClassIf(count.Get()%2 == 1, "red"), Text("Click me")),
//	    El("small", Textf("double: %d", double.Get())),
//	)
//
// # Keyed lists
//
// For gives each row a stable key. Diff matches keyed rows by key, never by
// position, so removing a middle row leaves the others untouched.
//
// # Hydration
//
// AssignHIDs gives every element a hydration ID. Diff carries IDs over to
// matched elements, so a retained element keeps its ID for as long as it
// stays in the tree.
package vdom
