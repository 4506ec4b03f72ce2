package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/server"
	"github.com/vango-dev/tour/pkg/vango"
)

func TestNew(t *testing.T) {
	err := New("E001")
	if err.Category != CategoryRuntime || err.Message != "Element reference not resolved" {
		t.Errorf("unexpected error: %+v", err)
	}
	if got := err.Error(); got != "E001: Element reference not resolved" {
		t.Errorf("Error() = %q", got)
	}

	unknown := New("E999")
	if unknown.Message != "Unknown error" {
		t.Errorf("unknown code message = %q", unknown.Message)
	}
}

func TestWrapAndIs(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New("E040").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped cause to match")
	}
	if !stderrors.Is(err, New("E040")) {
		t.Error("expected same code to match")
	}
	if stderrors.Is(err, New("E041")) {
		t.Error("different code must not match")
	}
	if !strings.HasSuffix(err.Error(), ": disk full") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"ref", fmt.Errorf("expected <input> to exist: %w", vango.ErrRefUnresolved), "E001"},
		{"root", fmt.Errorf("%w: %q", server.ErrUnknownRoot, "x"), "E002"},
		{"panic", server.NewHandlerError("s", "h1", "click", "boom", nil), "E004"},
		{"panic wrapping ref", server.NewHandlerError("s", "h1", "submit", vango.ErrRefUnresolved, nil), "E001"},
		{"closed", server.ErrSessionClosed, "E005"},
		{"frame", protocol.ErrFrameTooLarge, "E021"},
		{"other", stderrors.New("other"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E080") != nil {
		t.Error("nil should stay nil")
	}

	te := New("E003")
	if got := FromError(fmt.Errorf("load: %w", te), "E080"); got != te {
		t.Error("existing TourError should be returned as is")
	}

	if got := FromError(server.ErrMaxSessionsReached, "E080"); got.Code != "E006" {
		t.Errorf("classified code = %s", got.Code)
	}
	if got := FromError(stderrors.New("bind: address in use"), "E080"); got.Code != "E080" {
		t.Errorf("fallback code = %s", got.Code)
	}
}

func TestRegistry(t *testing.T) {
	codes := Codes()
	if len(codes) == 0 || codes[0] != "E001" {
		t.Fatalf("codes = %v", codes)
	}
	for _, code := range codes {
		tmpl, ok := Lookup(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template %+v", code, tmpl)
		}
	}
}

func TestSuggest(t *testing.T) {
	roots := []string{"form", "counter", "iteration"}
	tests := []struct {
		input, want string
	}{
		{"countr", "counter"},
		{"Iteraton", "iteration"},
		{"fom", "form"},
		{"fomr", "form"},
		{"cuonter", "counter"},
		{"iteratoin", "iteration"},
		{"xyz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Suggest(tt.input, roots); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSuggestSwappedLetters(t *testing.T) {
	tests := []struct {
		input      string
		candidates []string
		want       string
	}{
		{"wran", []string{"debug", "info", "warn", "error"}, "warn"},
		{"jsno", []string{"text", "json"}, "json"},
		{"xml", []string{"text", "json"}, ""},
	}
	for _, tt := range tests {
		if got := Suggest(tt.input, tt.candidates); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUnknownRoot(t *testing.T) {
	roots := []string{"form", "counter"}

	err := UnknownRoot("countr", roots)
	if err.Code != "E002" || err.Suggestion != `Did you mean "counter"?` {
		t.Errorf("unexpected error: %+v", err)
	}

	err = UnknownRoot("zzzzzz", roots)
	if err.Suggestion != "Available roots: form, counter" {
		t.Errorf("suggestion = %q", err.Suggestion)
	}
}

func TestFormat(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	err := UnknownRoot("countr", []string{"counter"}).Wrap(stderrors.New("lookup failed"))
	out := err.Format()

	for _, want := range []string{
		"ERROR E002: Unknown root widget",
		`No root is registered under "countr".`,
		"Cause: lookup failed",
		`Hint: Did you mean "counter"?`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "E002: Unknown root widget" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFprint(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("plain error output: %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, fmt.Errorf("wrapped: %w", New("E060")))
	if !strings.Contains(buf.String(), "ERROR E060: No bucket configured") {
		t.Errorf("coded error output: %q", buf.String())
	}
}
