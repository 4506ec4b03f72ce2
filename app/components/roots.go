package components

import (
	"github.com/vango-dev/tour/pkg/server"
)

// DefaultRoot is the root mounted when a request names none.
const DefaultRoot = "form"

// Root is a named widget a session can mount.
type Root struct {
	Name        string
	Title       string
	Description string
	New         server.RootFunc
}

// Roots lists every mountable widget, default first.
var Roots = []Root{
	{
		Name:        "form",
		Title:       "Forms and Inputs",
		Description: "A controlled input next to an uncontrolled one read through a node ref on submit.",
		New:         App,
	},
	{
		Name:        "counter",
		Title:       "Counter",
		Description: "A click counter with a derived value and three progress bars.",
		New:         AppOne,
	},
	{
		Name:        "iteration",
		Title:       "Iteration",
		Description: "A static list of counters and a keyed list whose rows can be added and removed.",
		New:         AppTwo,
	},
}

// Lookup returns the root with the given name.
func Lookup(name string) (Root, bool) {
	for _, r := range Roots {
		if r.Name == name {
			return r, true
		}
	}
	return Root{}, false
}

// Names returns the names of all roots in registry order.
func Names() []string {
	names := make([]string, len(Roots))
	for i, r := range Roots {
		names[i] = r.Name
	}
	return names
}

// RegisterAll registers every root with srv and makes DefaultRoot the
// default.
func RegisterAll(srv *server.Server) {
	for _, r := range Roots {
		srv.Register(r.Name, r.New)
	}
	// Registered first, so this cannot fail.
	_ = srv.SetDefaultRoot(DefaultRoot)
}
