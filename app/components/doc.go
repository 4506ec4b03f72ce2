// Package components holds the tour's widgets.
//
// Stateless widgets such as ProgressBar are plain functions called while
// the parent renders. Stateful widgets create their signals once in a
// constructor and implement vdom.Component, so every render pass reads
// the same state:
//
//	counter := components.NewCounter()
//	srv.Register("counter", func() vdom.Component { return counter })
//
// Roots lists the widgets a server can mount.
package components
