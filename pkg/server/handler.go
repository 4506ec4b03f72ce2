package server

import (
	"context"
	"time"

	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/vango"
	"github.com/vango-dev/tour/pkg/vdom"
)

// Handler is the internal event handler function type.
type Handler func(event *Event)

// Event is a decoded client event with runtime context.
type Event struct {
	// Seq is the sequence number of the event.
	Seq uint64

	// Type is the type of event (click, input, submit).
	Type protocol.EventType

	// HID is the hydration ID of the target element.
	HID string

	// Value is the target's live value for input events.
	Value string

	// Fields holds the live values of a submitted form's controls by HID.
	Fields map[string]string

	// Prevented reports whether the default action was suppressed, either
	// by the client before forwarding or by the handler.
	Prevented bool

	// PatchCount is the number of patches the event produced. It is set
	// once the handler and re-render have run.
	PatchCount int

	// Session is the session that received the event.
	Session *Session

	// Time is when the event was received by the server.
	Time time.Time

	ctx context.Context
}

// Context returns the event's context.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// WithContext replaces the event's context. Middleware uses it to pass
// spans and deadlines down the chain.
func (e *Event) WithContext(ctx context.Context) {
	e.ctx = ctx
}

// TypeString returns the event type as a string, for logs and spans.
func (e *Event) TypeString() string {
	return string(e.Type)
}

func newEvent(s *Session, pe *protocol.Event) *Event {
	return &Event{
		Seq:       pe.Seq,
		Type:      pe.Type,
		HID:       pe.HID,
		Value:     pe.Value,
		Fields:    pe.Fields,
		Prevented: pe.Prevented,
		Session:   s,
		Time:      time.Now(),
		ctx:       context.Background(),
	}
}

// EventMiddleware wraps the handling of every event. next runs the rest of
// the chain and finally the handler and re-render.
type EventMiddleware func(event *Event, next func() error) error

// chain runs middleware in order around final.
func chain(mw []EventMiddleware, event *Event, final func() error) error {
	if len(mw) == 0 {
		return final()
	}
	return mw[0](event, func() error {
		return chain(mw[1:], event, final)
	})
}

// wrapHandler converts a handler value stored in Props to a Handler.
// Supported shapes:
//   - func()
//   - func(string): receives the input value
//   - func(*vdom.SubmitEvent)
//   - func(*Event)
//   - vango.ModifiedHandler wrapping any of the above
//
// Unsupported shapes return nil.
func wrapHandler(h any) Handler {
	switch fn := h.(type) {
	case vango.ModifiedHandler:
		inner := wrapHandler(fn.Unwrap())
		if inner == nil {
			return nil
		}
		if !fn.PreventDefault {
			return inner
		}
		return func(e *Event) {
			e.Prevented = true
			inner(e)
		}

	case Handler:
		return fn

	case func(*Event):
		return fn

	case func():
		return func(*Event) { fn() }

	case func(string):
		return func(e *Event) { fn(e.Value) }

	case func(*vdom.SubmitEvent):
		return func(e *Event) {
			se := vdom.NewSubmitEvent(e.Fields, e.Prevented)
			fn(se)
			e.Prevented = se.DefaultPrevented()
		}

	default:
		return nil
	}
}
