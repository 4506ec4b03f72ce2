package vango

// ModifiedHandler wraps an event handler with client-side modifiers.
// The renderer emits the modifiers as element markers and the thin client
// applies them before the event is forwarded to the server.
type ModifiedHandler struct {
	// Handler is the wrapped handler function.
	Handler any

	// PreventDefault suppresses the browser default action (form
	// navigation, link following) once per event, before forwarding.
	PreventDefault bool
}

// Unwrap returns the innermost handler.
func (m ModifiedHandler) Unwrap() any {
	if inner, ok := m.Handler.(ModifiedHandler); ok {
		return inner.Unwrap()
	}
	return m.Handler
}

// merge combines the flags of m and its wrapped ModifiedHandler, if any.
func (m ModifiedHandler) merge() ModifiedHandler {
	inner, ok := m.Handler.(ModifiedHandler)
	if !ok {
		return m
	}
	inner = inner.merge()
	return ModifiedHandler{
		Handler:        inner.Handler,
		PreventDefault: m.PreventDefault || inner.PreventDefault,
	}
}

// PreventDefault marks handler so the browser default action is suppressed.
//
//	OnSubmit(vango.PreventDefault(func(ev *vdom.SubmitEvent) { ... }))
func PreventDefault(handler any) ModifiedHandler {
	return ModifiedHandler{Handler: handler, PreventDefault: true}.merge()
}
