package errors

import (
	"cmp"
	stderrors "errors"
	"fmt"
)

// Category groups codes by the part of the tour that raises them.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
	CategoryPublish  Category = "publish"
)

// TourError is an error with a registered code, shown to CLI users with
// its detail, cause and a suggested fix.
type TourError struct {
	Code       string
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	Wrapped    error
}

func (e *TourError) Error() string {
	s := e.Message
	if e.Code != "" {
		s = fmt.Sprintf("%s: %s", e.Code, s)
	}
	if e.Wrapped != nil {
		s = fmt.Sprintf("%s: %v", s, e.Wrapped)
	}
	return s
}

func (e *TourError) Unwrap() error { return e.Wrapped }

// Is reports whether target carries the same code, so
// errors.Is(err, errors.New("E002")) checks for an unknown root.
func (e *TourError) Is(target error) bool {
	t, ok := target.(*TourError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithDetail sets the explanation shown under the message.
func (e *TourError) WithDetail(format string, args ...any) *TourError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion sets the hint shown last.
func (e *TourError) WithSuggestion(s string) *TourError {
	e.Suggestion = s
	return e
}

// Wrap records err as the cause.
func (e *TourError) Wrap(err error) *TourError {
	e.Wrapped = err
	return e
}

// New returns a fresh error for a registered code. Unregistered codes get
// a generic message.
func New(code string) *TourError {
	t, ok := registry[code]
	if !ok {
		t.Message = "Unknown error"
	}
	return &TourError{Code: code, Category: t.Category, Message: t.Message, Detail: t.Detail}
}

// FromError converts err to a TourError: one already in the chain is
// returned as is, known sentinels get their own code, and anything else
// gets fallback.
func FromError(err error, fallback string) *TourError {
	if err == nil {
		return nil
	}
	var te *TourError
	if stderrors.As(err, &te) {
		return te
	}
	return New(cmp.Or(Classify(err), fallback)).Wrap(err)
}
