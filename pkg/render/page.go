package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/tour/pkg/vdom"
)

// DefaultClientScript is where the server serves the thin client.
const DefaultClientScript = "/_tour/client.js"

// DefaultLivePath is the WebSocket endpoint of the live session.
const DefaultLivePath = "/_tour/live"

// DefaultStyles is the stylesheet every tour page carries.
const DefaultStyles = `body { font-family: system-ui, sans-serif; margin: 2rem; }
button { margin: 0.25rem; }
.red { color: red; }
progress { width: 12rem; }`

// PageData is a full document. Only Body is required.
type PageData struct {
	Body  *vdom.VNode // HIDs already assigned
	Title string
	Lang  string // default "en"

	// Styles are inline stylesheets. Default DefaultStyles.
	Styles []string

	// ClientScript is the client's URL. Default DefaultClientScript.
	ClientScript string

	// LiveURL is the WebSocket URL, root query included. A page without
	// one is a static snapshot and gets no client script.
	LiveURL string
}

// RenderPage writes a complete HTML document around page.Body.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	hw := &htmlWriter{w: w, config: r.config}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	hw.str("<!DOCTYPE html>\n")
	hw.str(`<html lang="` + escapeAttr(lang) + `">` + "\n")

	hw.str("<head>\n")
	hw.str(`  <meta charset="utf-8">` + "\n")
	hw.str(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		hw.str("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}
	styles := page.Styles
	if len(styles) == 0 {
		styles = []string{DefaultStyles}
	}
	for _, css := range styles {
		hw.str("  <style>" + css + "</style>\n")
	}
	hw.str("</head>\n")

	hw.str("<body>\n")
	hw.node(page.Body, 0)
	hw.str("\n")

	// The live endpoint travels as a data attribute of the script tag.
	// Without one the page is static.
	if page.LiveURL != "" {
		src := page.ClientScript
		if src == "" {
			src = DefaultClientScript
		}
		hw.str(fmt.Sprintf(`  <script src="%s" data-live="%s" defer></script>`+"\n",
			escapeAttr(src), escapeAttr(page.LiveURL)))
	}
	hw.str("</body>\n</html>\n")
	return hw.err
}
