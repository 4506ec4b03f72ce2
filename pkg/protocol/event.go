package protocol

// EventType names a client event.
type EventType string

const (
	EventClick  EventType = "click"
	EventInput  EventType = "input"
	EventChange EventType = "change"
	EventSubmit EventType = "submit"
)

// Valid reports whether the event type is one the runtime handles.
func (et EventType) Valid() bool {
	switch et {
	case EventClick, EventInput, EventChange, EventSubmit:
		return true
	default:
		return false
	}
}

// Event is a client → server event.
type Event struct {
	// Seq is the client's event sequence number.
	Seq uint64 `json:"seq"`

	// HID is the target element's hydration ID.
	HID string `json:"hid"`

	// Type is the event name.
	Type EventType `json:"type"`

	// Value is the target's live value for input and change events.
	Value string `json:"value,omitempty"`

	// Fields maps the HID of each control in a submitted form to its live
	// value.
	Fields map[string]string `json:"fields,omitempty"`

	// Prevented reports that the client suppressed the default action.
	Prevented bool `json:"prevented,omitempty"`
}

// EncodeEvent encodes an event as a complete frame.
func EncodeEvent(e *Event) ([]byte, error) {
	return marshalFrame(FrameEvent, e)
}

// DecodeEvent decodes an Event frame.
func DecodeEvent(f *Frame) (*Event, error) {
	var e Event
	if err := unmarshalFrame(f, FrameEvent, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
