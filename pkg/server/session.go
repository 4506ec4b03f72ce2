package server

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/vango"
	"github.com/vango-dev/tour/pkg/vdom"
)

// RootElementID is the id of the element every root widget is mounted in.
const RootElementID = "app"

// RootFunc creates a root widget. It runs once per session; the returned
// component's Render runs on every render pass.
type RootFunc func() vdom.Component

// Session represents a single connected client.
type Session struct {
	// Identity
	ID        string
	RootName  string
	CreatedAt time.Time

	lastActive atomic.Int64

	// Connection (nil for headless sessions)
	conn   *websocket.Conn
	mu     sync.Mutex // serializes writes
	config *SessionConfig
	logger *slog.Logger
	debug  bool

	// Mounted widget
	owner     *vango.Owner
	component vdom.Component
	tree      *vdom.VNode
	hids      *vdom.HIDGenerator
	handlers  map[string]Handler
	refs      *vdom.RefBinder
	listener  *vango.ListenerFunc
	dirty     atomic.Bool

	// Live values reported by the client, by HID
	liveMu sync.RWMutex
	live   map[string]string

	lastPatches []vdom.Patch
	middleware  []EventMiddleware

	// Lifecycle
	events       chan *protocol.Event
	done         chan struct{}
	started      atomic.Bool
	closed       atomic.Bool
	closeOnce    sync.Once
	teardownOnce sync.Once
	onClose      func(*Session)
}

func newSession(conn *websocket.Conn, config *SessionConfig, logger *slog.Logger) *Session {
	config = config.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		config:    config,
		logger:    logger.With("session_id", id),
		owner:     vango.NewOwner(nil),
		hids:      vdom.NewHIDGenerator(),
		handlers:  make(map[string]Handler),
		refs:      vdom.NewRefBinder(),
		live:      make(map[string]string),
		events:    make(chan *protocol.Event, config.MaxEventQueue),
		done:      make(chan struct{}),
	}
	s.listener = vango.NewListenerFunc(func() { s.dirty.Store(true) })
	s.owner.OnCleanup(s.refs.Release)
	s.owner.OnCleanup(s.listener.Release)
	s.touch()

	if conn != nil {
		conn.SetReadLimit(config.MaxMessageSize)
	}
	return s
}

// NewMockSession creates a session without a connection. Patches are kept
// in memory and can be read with LastPatches. Used for server-side page
// renders and tests.
func NewMockSession() *Session {
	return newSession(nil, nil, nil)
}

// Use appends event middleware. It must be called before the session starts.
func (s *Session) Use(mw ...EventMiddleware) {
	s.middleware = append(s.middleware, mw...)
}

// SetDebug enables logging of handler panic stacks.
func (s *Session) SetDebug(debug bool) {
	s.debug = debug
}

// MountRoot creates the root widget and renders it for the first time.
// A session mounts exactly one root.
func (s *Session) MountRoot(name string, root RootFunc) (err error) {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.component != nil {
		return NewSessionError(s.ID, "mount", ErrAlreadyMounted)
	}
	if root == nil {
		return NewSessionError(s.ID, "mount", ErrUnknownRoot)
	}

	defer func() {
		if r := recover(); r != nil {
			s.component = nil
			err = NewHandlerError(s.ID, "", "mount", r, debug.Stack())
			s.logger.Error("root mount panic", "root", name, "panic", r)
		}
	}()

	vango.WithOwner(s.owner, func() {
		s.component = root()
	})
	if s.component == nil {
		return NewSessionError(s.ID, "mount", fmt.Errorf("root %q returned nil", name))
	}

	s.RootName = name
	s.tree = s.render()
	vdom.AssignHIDs(s.tree, s.hids)
	s.dirty.Store(false)
	s.afterRender()

	s.logger.Debug("root mounted",
		"root", name,
		"handlers", len(s.handlers),
		"hids", s.hids.Current())
	return nil
}

// render runs the root's render function with the session as listener, so
// every signal it reads marks the session dirty when written. Signals only
// the previous render read are unsubscribed first.
func (s *Session) render() *vdom.VNode {
	s.listener.Release()

	var tree *vdom.VNode
	vango.WithOwner(s.owner, func() {
		vango.WithListener(s.listener, func() {
			tree = vdom.Div(vdom.ID(RootElementID), s.component)
		})
	})
	return tree
}

// afterRender refreshes everything derived from the current tree.
func (s *Session) afterRender() {
	s.collectHandlers()
	s.refs.Bind(s.tree, s)
	s.pruneLiveValues()
}

// collectHandlers rebuilds the handler registry from the current tree.
// Keys have the form "HID_on<event>".
func (s *Session) collectHandlers() {
	handlers := make(map[string]Handler)
	vdom.Walk(s.tree, func(n *vdom.VNode) {
		if n.Kind != vdom.KindElement || n.HID == "" {
			return
		}
		for key, value := range n.Props {
			if !strings.HasPrefix(key, "on") || value == nil {
				continue
			}
			h := wrapHandler(value)
			if h == nil {
				s.logger.Warn("unsupported handler type",
					"hid", n.HID,
					"event", key,
					"type", fmt.Sprintf("%T", value))
				continue
			}
			handlers[n.HID+"_"+key] = h
		}
	})
	s.handlers = handlers
}

// Dispatch handles one client event synchronously: it records the live
// values the event carries, runs the bound handler through the middleware
// chain, flushes effects, re-renders and sends the resulting patches.
//
// Connected sessions call it from the event loop only.
func (s *Session) Dispatch(pe *protocol.Event) (*Event, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	if s.component == nil {
		return nil, NewSessionError(s.ID, "dispatch", ErrNotMounted)
	}

	s.touch()
	s.recordLiveValues(pe)

	ev := newEvent(s, pe)
	err := chain(s.middleware, ev, func() error {
		return s.runEvent(ev)
	})
	return ev, err
}

func (s *Session) runEvent(ev *Event) error {
	handler, ok := s.handlers[ev.HID+"_on"+ev.TypeString()]
	if !ok {
		return NewSessionError(s.ID, "dispatch "+ev.TypeString()+" to "+ev.HID, ErrHandlerNotFound)
	}

	herr := s.safeExecute(ev, func() { handler(ev) })
	if err := s.safeExecute(ev, s.owner.RunPendingEffects); err != nil && herr == nil {
		herr = err
	}

	n, err := s.renderDirty(ev.Seq)
	ev.PatchCount = n
	if herr != nil {
		return herr
	}
	return err
}

// safeExecute runs fn inside a batch named after the event, with panic
// recovery. A panic aborts only the current event.
func (s *Session) safeExecute(ev *Event, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			herr := NewHandlerError(s.ID, ev.HID, ev.TypeString(), r, debug.Stack())
			s.logger.Error("handler panic",
				"hid", ev.HID,
				"event", ev.TypeString(),
				"panic", r)
			if s.debug {
				s.logger.Error("handler stack", "stack", string(herr.Stack))
			}
			err = herr
		}
	}()

	vango.WithOwner(s.owner, func() {
		vango.TxNamed(ev.TypeString(), fn)
	})
	return nil
}

// renderDirty re-renders the root if any of its sources changed and sends
// the diff. It returns the number of patches produced.
func (s *Session) renderDirty(seq uint64) (int, error) {
	if !s.dirty.Swap(false) {
		return 0, nil
	}

	next := s.render()
	patches := s.dropEchoes(vdom.Diff(s.tree, next))
	vdom.AssignHIDs(next, s.hids)
	s.tree = next
	s.afterRender()

	if len(patches) == 0 {
		return 0, nil
	}
	s.lastPatches = patches
	return len(patches), s.sendPatches(seq, patches)
}

// sendPatches encodes patches and writes them to the connection.
func (s *Session) sendPatches(seq uint64, patches []vdom.Patch) error {
	if s.conn == nil {
		return nil
	}

	data, err := protocol.EncodePatches(&protocol.PatchesFrame{
		Seq:     seq,
		Patches: protocol.FromVDOM(patches),
	})
	if err != nil {
		return NewSessionError(s.ID, "encode patches", err)
	}
	if err := s.writeMessage(data); err != nil {
		return NewSessionError(s.ID, "send patches", err)
	}
	return nil
}

// writeMessage writes one binary frame under the write lock.
func (s *Session) writeMessage(data []byte) error {
	if s.conn == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

// LiveValue implements vdom.ValueSource.
func (s *Session) LiveValue(hid string) (string, bool) {
	s.liveMu.RLock()
	defer s.liveMu.RUnlock()
	v, ok := s.live[hid]
	return v, ok
}

// SetLiveValue records the live value of an element, as the browser would
// hold it after the user edits a field.
func (s *Session) SetLiveValue(hid, value string) {
	s.liveMu.Lock()
	defer s.liveMu.Unlock()
	s.live[hid] = value
}

func (s *Session) recordLiveValues(pe *protocol.Event) {
	switch pe.Type {
	case protocol.EventInput, protocol.EventChange:
		s.SetLiveValue(pe.HID, pe.Value)
	case protocol.EventSubmit:
		for hid, value := range pe.Fields {
			s.SetLiveValue(hid, value)
		}
	}
}

// dropEchoes removes value patches that would write back what the client
// already holds, and records the value of every one it keeps. An echo
// landing after a newer keystroke would otherwise undo it.
func (s *Session) dropEchoes(patches []vdom.Patch) []vdom.Patch {
	s.liveMu.Lock()
	defer s.liveMu.Unlock()
	return slices.DeleteFunc(patches, func(p vdom.Patch) bool {
		if p.Op != vdom.PatchSetValue || p.Key != "value" {
			return false
		}
		if v, ok := s.live[p.HID]; ok && v == p.Value {
			return true
		}
		s.live[p.HID] = p.Value
		return false
	})
}

// pruneLiveValues forgets values of elements no longer in the tree.
func (s *Session) pruneLiveValues() {
	present := vdom.CollectHIDs(s.tree)

	s.liveMu.Lock()
	defer s.liveMu.Unlock()
	for hid := range s.live {
		if _, ok := present[hid]; !ok {
			delete(s.live, hid)
		}
	}
}

// Tree returns the current rendered tree.
func (s *Session) Tree() *vdom.VNode {
	return s.tree
}

// LastPatches returns the patches produced by the most recent re-render.
func (s *Session) LastPatches() []vdom.Patch {
	return s.lastPatches
}

// HandlerCount returns the number of registered handlers.
func (s *Session) HandlerCount() int {
	return len(s.handlers)
}

// HasHandler reports whether hid has a handler for event.
func (s *Session) HasHandler(hid string, event protocol.EventType) bool {
	_, ok := s.handlers[hid+"_on"+string(event)]
	return ok
}

// Owner returns the session's root reactive owner.
func (s *Session) Owner() *vango.Owner {
	return s.owner
}

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns when the session last received a message.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// IsIdle reports whether the session has been inactive longer than
// IdleTimeout.
func (s *Session) IsIdle(now time.Time) bool {
	return now.Sub(s.LastActive()) > s.config.IdleTimeout
}

// IsClosed reports whether the session has been closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close closes the session. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)

		if s.conn != nil {
			s.mu.Lock()
			deadline := time.Now().Add(time.Second)
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			_ = s.conn.Close()
			s.mu.Unlock()
		}

		// A running event loop tears down on exit.
		if !s.started.Load() {
			s.teardown()
		}

		if s.onClose != nil {
			s.onClose(s)
		}
		s.logger.Debug("session closed")
	})
}

// teardown disposes the reactive owner, which also releases refs and the
// render's subscriptions.
func (s *Session) teardown() {
	s.teardownOnce.Do(s.owner.Dispose)
}
