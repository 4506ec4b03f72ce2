package components

import (
	"log/slog"

	"github.com/vango-dev/tour/pkg/vango"
	. "github.com/vango-dev/tour/pkg/vdom"
)

// NameForm contrasts a controlled input, whose value the server sets on
// every render, with an uncontrolled one the server reads only on submit.
type NameForm struct {
	Name    *vango.Signal[string]
	NameTwo *vango.Signal[string]

	input   *NodeRef
	initial string
}

// NewNameForm creates the form with its default values. Created under a
// session, it logs every submitted value at debug level until the session
// ends.
func NewNameForm() *NameForm {
	f := &NameForm{
		Name:    vango.NewSignal("Controlled"),
		NameTwo: vango.NewSignal("Uncontrolled"),
		input:   NewNodeRef(),
		initial: "Uncontrolled",
	}
	vango.CreateEffect(func() vango.Cleanup {
		slog.Debug("name two", "value", f.NameTwo.Get())
		return nil
	})
	return f
}

// Submit copies the uncontrolled input's live value into NameTwo. It
// panics if the input is not mounted.
func (f *NameForm) Submit(ev *SubmitEvent) {
	ev.PreventDefault()

	value := f.input.MustResolve("<input> to exist").Value()
	f.NameTwo.Set(value)
}

// Render implements vdom.Component.
func (f *NameForm) Render() *VNode {
	return Fragment(
		Input(
			Type("text"),
			OnInput(f.Name.Set),
			Prop("value", f.Name.Get()),
		),
		P(Textf("Name is: %s", f.Name.Get())),

		Form(
			OnSubmit(vango.PreventDefault(f.Submit)),
			Input(Type("text"), Value(f.initial), Ref(f.input)),
			Input(Type("submit"), Value("Submit")),
		),
		P(Textf("Name Two is: %s", f.NameTwo.Get())),
	)
}

// App is the form root.
func App() Component {
	return NewNameForm()
}
