package server

import (
	"io"

	"github.com/vango-dev/tour/pkg/render"
)

// PageOptions controls how a root is rendered to a document.
type PageOptions struct {
	// Title is the document title.
	Title string

	// LiveURL is the WebSocket endpoint the client connects to. Empty
	// renders a static page.
	LiveURL string

	// Pretty indents the output. Live pages must not be pretty: the
	// client addresses children by index and indentation adds text nodes.
	Pretty bool
}

// RenderRootPage mounts root in a headless session and writes the full HTML
// document of its first render.
func RenderRootPage(w io.Writer, name string, root RootFunc, opts PageOptions) error {
	s := NewMockSession()
	defer s.Close()

	if err := s.MountRoot(name, root); err != nil {
		return err
	}

	r := render.NewRenderer(render.RendererConfig{Pretty: opts.Pretty})
	return r.RenderPage(w, render.PageData{
		Body:    s.Tree(),
		Title:   opts.Title,
		LiveURL: opts.LiveURL,
	})
}

// RenderRootFragment writes only the mounted root element.
func RenderRootFragment(w io.Writer, name string, root RootFunc, pretty bool) error {
	s := NewMockSession()
	defer s.Close()

	if err := s.MountRoot(name, root); err != nil {
		return err
	}

	r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
	return r.RenderToWriter(w, s.Tree())
}
