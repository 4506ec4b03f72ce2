package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	// FrameHeaderSize is the length of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload the 16-bit length can carry.
	MaxPayloadSize = 1<<16 - 1
)

// FrameType identifies what a frame's payload holds.
type FrameType uint8

const (
	FrameEvent   FrameType = 0x01 // client to server
	FramePatches FrameType = 0x02 // server to client
	FrameControl FrameType = 0x03 // ping, pong and close, either way
	FrameError   FrameType = 0x05 // server to client
)

var frameTypeNames = map[FrameType]string{
	FrameEvent:   "Event",
	FramePatches: "Patches",
	FrameControl: "Control",
	FrameError:   "Error",
}

func (ft FrameType) String() string {
	if name, ok := frameTypeNames[ft]; ok {
		return name
	}
	return "Unknown"
}

var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
	ErrPayloadMismatch  = errors.New("protocol: payload length does not match header")
)

// Frame is one WebSocket binary message: a four byte header followed by a
// JSON payload.
//
//	byte 0     frame type
//	byte 1     reserved, written as zero and ignored on read
//	bytes 2-3  payload length, big-endian
type Frame struct {
	Type    FrameType
	Payload []byte
}

// NewFrame creates a frame.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the frame's wire form.
func (f *Frame) Encode() ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize, FrameHeaderSize+len(f.Payload))
	buf[0] = byte(f.Type)
	binary.BigEndian.PutUint16(buf[2:], uint16(len(f.Payload)))
	return append(buf, f.Payload...), nil
}

// DecodeFrame parses one complete message. The payload is copied, so data
// may be reused by the caller.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	body := data[FrameHeaderSize:]
	if len(body) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	if int(binary.BigEndian.Uint16(data[2:])) != len(body) {
		return nil, ErrPayloadMismatch
	}

	ft := FrameType(data[0])
	if _, ok := frameTypeNames[ft]; !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrInvalidFrameType, uint8(ft))
	}
	return &Frame{Type: ft, Payload: append([]byte(nil), body...)}, nil
}

// ReadFrame reads one frame from a byte stream.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	data := make([]byte, FrameHeaderSize+int(binary.BigEndian.Uint16(header[2:])))
	copy(data, header)
	if _, err := io.ReadFull(r, data[FrameHeaderSize:]); err != nil {
		return nil, err
	}
	return DecodeFrame(data)
}

// WriteFrame writes f to w.
func WriteFrame(w io.Writer, f *Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// marshalFrame encodes v as the JSON payload of a frame of type ft.
func marshalFrame(ft FrameType, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", ft, err)
	}
	return NewFrame(ft, payload).Encode()
}

// unmarshalFrame decodes f's payload into v after checking its type.
func unmarshalFrame(f *Frame, want FrameType, v any) error {
	if f.Type != want {
		return fmt.Errorf("%w: got %s, want %s", ErrInvalidFrameType, f.Type, want)
	}
	if err := json.Unmarshal(f.Payload, v); err != nil {
		return fmt.Errorf("protocol: decode %s: %w", want, err)
	}
	return nil
}
