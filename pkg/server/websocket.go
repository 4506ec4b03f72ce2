package server

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/vango"
)

// Start launches the session goroutines: ReadLoop, WriteLoop and
// EventLoop. The connection is closed when any of them gives up.
func (s *Session) Start() {
	s.started.Store(true)
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

// ReadLoop decodes incoming frames until the connection fails or the
// session closes. Events go to the queue; control frames are answered
// inline.
func (s *Session) ReadLoop() {
	defer vango.ReleaseGoroutine()
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if !expectedClose(err) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.touch()
		s.route(msg)
	}
}

func expectedClose(err error) bool {
	return !websocket.IsUnexpectedCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure)
}

// route handles one raw message. Malformed input is reported to the client
// and skipped; it never ends the session.
func (s *Session) route(msg []byte) {
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		s.logger.Error("bad frame", "error", err)
		s.sendError(protocol.ErrInvalidFrame, err.Error(), false)
		return
	}

	switch frame.Type {
	case protocol.FrameEvent:
		ev, err := protocol.DecodeEvent(frame)
		switch {
		case err != nil:
			s.logger.Error("bad event", "error", err)
			s.sendError(protocol.ErrInvalidEvent, err.Error(), false)
		case !ev.Type.Valid():
			s.logger.Warn("unsupported event type", "type", ev.Type, "hid", ev.HID)
		default:
			s.enqueue(ev)
		}
	case protocol.FrameControl:
		ctrl, err := protocol.DecodeControl(frame)
		if err != nil {
			s.logger.Error("bad control frame", "error", err)
			return
		}
		switch ctrl.Type {
		case protocol.ControlPing:
			s.sendControl(protocol.ControlPong, ctrl.Timestamp)
		case protocol.ControlClose:
			s.Close()
		}
	default:
		s.logger.Warn("unexpected frame type", "type", frame.Type)
	}
}

func (s *Session) enqueue(ev *protocol.Event) {
	err := s.QueueEvent(ev)
	if err == nil {
		return
	}
	s.logger.Warn("event dropped", "hid", ev.HID, "type", ev.Type, "error", err)
	if errors.Is(err, ErrEventQueueFull) {
		s.sendError(protocol.ErrEventDropped, "event queue full", false)
	}
}

// QueueEvent hands an event to the EventLoop. It never blocks: a full
// queue returns ErrEventQueueFull.
func (s *Session) QueueEvent(ev *protocol.Event) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.events <- ev:
		return nil
	default:
		return ErrEventQueueFull
	}
}

// EventLoop runs queued events in arrival order, one at a time, and tears
// the session's widgets down when the session ends.
func (s *Session) EventLoop() {
	defer vango.ReleaseGoroutine()
	defer s.teardown()

	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			if _, err := s.Dispatch(ev); err != nil {
				s.reportEventError(ev, err)
			}
		}
	}
}

func (s *Session) reportEventError(ev *protocol.Event, err error) {
	var herr *HandlerError
	switch {
	case errors.As(err, &herr):
		s.sendError(protocol.ErrHandlerPanic, "handler failed", false)
	case errors.Is(err, ErrSessionClosed):
	case errors.Is(err, ErrHandlerNotFound):
		s.logger.Warn("handler not found", "hid", ev.HID, "type", ev.Type)
	default:
		s.logger.Error("event failed", "hid", ev.HID, "type", ev.Type, "error", err)
	}
}

// WriteLoop pings the client every HeartbeatInterval. A failed ping closes
// the session.
func (s *Session) WriteLoop() {
	tick := time.NewTicker(s.config.HeartbeatInterval)
	defer tick.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-tick.C:
			if err := s.sendControl(protocol.ControlPing, now.UnixMilli()); err != nil {
				s.logger.Debug("heartbeat failed", "error", err)
				s.Close()
				return
			}
		}
	}
}

func (s *Session) sendControl(ct protocol.ControlType, ts int64) error {
	data, err := protocol.EncodeControl(&protocol.Control{Type: ct, Timestamp: ts})
	if err != nil {
		return err
	}
	return s.writeMessage(data)
}

func (s *Session) sendError(code protocol.ErrorCode, message string, fatal bool) {
	data, err := protocol.EncodeErrorMessage(&protocol.ErrorMessage{Code: code, Message: message, Fatal: fatal})
	if err == nil {
		err = s.writeMessage(data)
	}
	if err != nil {
		s.logger.Debug("error frame not sent", "code", code, "error", err)
	}
}
