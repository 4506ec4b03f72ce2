package protocol

import "fmt"

// ErrorCode classifies an Error frame so the client can decide whether to
// retry, reload or just log.
type ErrorCode uint16

const (
	ErrUnknown         ErrorCode = 0x0000
	ErrInvalidFrame    ErrorCode = 0x0001
	ErrInvalidEvent    ErrorCode = 0x0002
	ErrHandlerNotFound ErrorCode = 0x0003
	ErrHandlerPanic    ErrorCode = 0x0004
	ErrSessionExpired  ErrorCode = 0x0005
	ErrEventDropped    ErrorCode = 0x0006 // event queue full
	ErrSessionLimit    ErrorCode = 0x0007 // server at max sessions
	ErrServerError     ErrorCode = 0x0100
)

var errorCodeNames = map[ErrorCode]string{
	ErrInvalidFrame:    "InvalidFrame",
	ErrInvalidEvent:    "InvalidEvent",
	ErrHandlerNotFound: "HandlerNotFound",
	ErrHandlerPanic:    "HandlerPanic",
	ErrSessionExpired:  "SessionExpired",
	ErrEventDropped:    "EventDropped",
	ErrSessionLimit:    "SessionLimit",
	ErrServerError:     "ServerError",
}

func (ec ErrorCode) String() string {
	if name, ok := errorCodeNames[ec]; ok {
		return name
	}
	return "Unknown"
}

// ErrorMessage is the payload of an Error frame. A fatal error is followed
// by the server closing the connection.
type ErrorMessage struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Fatal   bool      `json:"fatal,omitempty"`
}

// Error lets a decoded ErrorMessage be returned as an error.
func (em *ErrorMessage) Error() string {
	return fmt.Sprintf("protocol: %s: %s", em.Code, em.Message)
}

// EncodeErrorMessage encodes em as a complete Error frame.
func EncodeErrorMessage(em *ErrorMessage) ([]byte, error) {
	return marshalFrame(FrameError, em)
}

// DecodeErrorMessage decodes the payload of an Error frame.
func DecodeErrorMessage(f *Frame) (*ErrorMessage, error) {
	em := new(ErrorMessage)
	if err := unmarshalFrame(f, FrameError, em); err != nil {
		return nil, err
	}
	return em, nil
}
