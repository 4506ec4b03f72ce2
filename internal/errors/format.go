package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	codeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	wrapStyle  = lipgloss.NewStyle().PaddingLeft(2).Width(74)
)

var color = true

// SetColor turns terminal styling on or off.
func SetColor(on bool) { color = on }

func paint(s lipgloss.Style, text string) string {
	if !color {
		return text
	}
	return s.Render(text)
}

// Format renders e as a block for the terminal:
//
//	ERROR E002: Unknown root widget
//
//	  No root is registered under "countr".
//
//	  Hint: Did you mean "counter"?
func (e *TourError) Format() string {
	head := paint(errorStyle, "ERROR:")
	if e.Code != "" {
		head = paint(errorStyle, "ERROR ") + paint(codeStyle, e.Code+":")
	}
	blocks := []string{head + " " + e.Message}

	if e.Detail != "" {
		blocks = append(blocks, wrapStyle.Render(e.Detail))
	}
	if e.Wrapped != nil {
		blocks = append(blocks, "  "+paint(mutedStyle, "Cause: "+e.Wrapped.Error()))
	}
	if e.Suggestion != "" {
		blocks = append(blocks, "  "+paint(hintStyle, "Hint:")+" "+e.Suggestion)
	}
	return "\n" + strings.Join(blocks, "\n\n") + "\n\n"
}

// FormatCompact renders e on one line without its cause.
func (e *TourError) FormatCompact() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// Fprint writes err to w, using Format when err wraps a TourError.
func Fprint(w io.Writer, err error) {
	var te *TourError
	if stderrors.As(err, &te) {
		io.WriteString(w, te.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %v\n\n", paint(errorStyle, "ERROR:"), err)
}
