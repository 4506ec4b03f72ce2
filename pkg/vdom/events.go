package vdom

// OnClick binds a click handler: func().
//
//	Button(OnClick(count.Inc), Text("Click me"))
func OnClick(handler any) EventHandler { return on("click", handler) }

// OnInput binds an input handler, fired on every keystroke:
// func(value string) or func().
//
//	Input(OnInput(name.Set), Prop("value", name.Get()))
func OnInput(handler any) EventHandler { return on("input", handler) }

// OnChange binds a change handler: func(value string) or func().
func OnChange(handler any) EventHandler { return on("change", handler) }

// OnSubmit binds a form submit handler: func(*SubmitEvent) or func().
// Wrap the handler in vango.PreventDefault to keep the browser from
// submitting the form natively and reloading the page.
func OnSubmit(handler any) EventHandler { return on("submit", handler) }

func on(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}
