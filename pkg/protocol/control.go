package protocol

// ControlType identifies the type of control message.
type ControlType string

const (
	ControlPing  ControlType = "ping"  // Server ping
	ControlPong  ControlType = "pong"  // Response to ping
	ControlClose ControlType = "close" // Session close
)

// Control is the payload of a Control frame.
type Control struct {
	Type ControlType `json:"type"`

	// Timestamp is a Unix timestamp in milliseconds.
	Timestamp int64 `json:"ts,omitempty"`
}

// EncodeControl encodes a control message as a complete frame.
func EncodeControl(c *Control) ([]byte, error) {
	return marshalFrame(FrameControl, c)
}

// DecodeControl decodes a Control frame.
func DecodeControl(f *Frame) (*Control, error) {
	var c Control
	if err := unmarshalFrame(f, FrameControl, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
