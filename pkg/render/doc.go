// Package render provides server-side rendering (SSR) of vdom trees.
//
// The first paint of every tour page is plain HTML produced here. Elements
// carry their hydration ID as data-hid and their bound events as
// data-on-<event> markers, so the thin client can forward events to the
// live session without re-rendering anything itself.
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// RenderPage wraps a tree in a complete document with the tour stylesheet
// and the client script.
//
// All text and attribute values are escaped.
package render
