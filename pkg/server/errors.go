package server

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("server: session closed")
	// ErrSessionNotFound is returned by SessionManager.Get for unknown IDs.
	ErrSessionNotFound = errors.New("server: session not found")
	// ErrHandlerNotFound means an event named an HID with no handler for
	// its type, usually because the element left the tree.
	ErrHandlerNotFound = errors.New("server: handler not found")
	// ErrEventQueueFull means an event arrived while MaxEventQueue events
	// were already waiting. The event is dropped.
	ErrEventQueueFull = errors.New("server: event queue full")
	// ErrMaxSessionsReached is returned when MaxSessions sessions are open.
	ErrMaxSessionsReached = errors.New("server: max sessions reached")
	// ErrUnknownRoot is returned for a root name that was never registered.
	ErrUnknownRoot = errors.New("server: unknown root")
	// ErrAlreadyMounted is returned when a session mounts a second root.
	ErrAlreadyMounted = errors.New("server: root already mounted")
	// ErrNotMounted is returned when a session is used before MountRoot.
	ErrNotMounted = errors.New("server: root not mounted")
)

// SessionError records which session operation failed.
type SessionError struct {
	SessionID string
	Op        string
	Err       error
}

// NewSessionError wraps err with the session and operation it came from.
func NewSessionError(sessionID, op string, err error) *SessionError {
	return &SessionError{SessionID: sessionID, Op: op, Err: err}
}

func (e *SessionError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("server: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("server: session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// HandlerError is a recovered panic from an event handler. The session
// keeps running after one; only the event that caused it is lost.
type HandlerError struct {
	SessionID string
	HID       string
	EventType string
	Panic     any
	Stack     []byte
}

// NewHandlerError records a recovered panic value and its stack.
func NewHandlerError(sessionID, hid, eventType string, panicVal any, stack []byte) *HandlerError {
	return &HandlerError{
		SessionID: sessionID,
		HID:       hid,
		EventType: eventType,
		Panic:     panicVal,
		Stack:     stack,
	}
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("server: handler panic in session %s, HID %s, event %s: %v",
		e.SessionID, e.HID, e.EventType, e.Panic)
}

// Unwrap returns the panic value when it is an error, so a handler that
// panics with vango.ErrRefUnresolved still matches errors.Is.
func (e *HandlerError) Unwrap() error {
	err, _ := e.Panic.(error)
	return err
}
