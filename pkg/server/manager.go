package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SessionManager tracks the open sessions of a server. It enforces the
// session limit and closes sessions that have been idle too long.
//
// Widget state lives only in its session, so a session closed here takes
// its counters and form values with it.
type SessionManager struct {
	config      *SessionConfig
	maxSessions int
	base        *slog.Logger // sessions log through this
	logger      *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	stats    ManagerStats
	onCreate func(*Session)
	onClose  func(*Session)

	stopSweep context.CancelFunc
	swept     chan struct{}
}

// ManagerStats is a snapshot of session counters.
type ManagerStats struct {
	Active       int
	TotalCreated uint64
	TotalClosed  uint64
	Peak         int
}

// NewSessionManager creates a SessionManager and starts its idle sweep.
// maxSessions of 0 means no limit; a non-positive sweepInterval means 30s.
func NewSessionManager(config *SessionConfig, maxSessions int, sweepInterval time.Duration, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	sm := &SessionManager{
		config:      config.withDefaults(),
		maxSessions: maxSessions,
		sessions:    make(map[string]*Session),
		stopSweep:   cancel,
		swept:       make(chan struct{}),
	}
	sm.setLogger(logger)
	go sm.sweep(ctx, sweepInterval)
	return sm
}

func (sm *SessionManager) setLogger(logger *slog.Logger) {
	sm.base = logger
	sm.logger = logger.With("component", "session_manager")
}

// Create registers a new, unstarted session on conn.
func (sm *SessionManager) Create(conn *websocket.Conn) (*Session, error) {
	sm.mu.Lock()
	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		sm.mu.Unlock()
		return nil, ErrMaxSessionsReached
	}
	s := newSession(conn, sm.config, sm.base.With("component", "session"))
	s.onClose = sm.forget
	sm.sessions[s.ID] = s
	sm.stats.TotalCreated++
	sm.stats.Peak = max(sm.stats.Peak, len(sm.sessions))
	active, onCreate := len(sm.sessions), sm.onCreate
	sm.mu.Unlock()

	if onCreate != nil {
		onCreate(s)
	}
	sm.logger.Info("session created", "session_id", s.ID, "active_sessions", active)
	return s, nil
}

// forget runs when a session closes.
func (sm *SessionManager) forget(s *Session) {
	sm.mu.Lock()
	_, ok := sm.sessions[s.ID]
	if ok {
		delete(sm.sessions, s.ID)
		sm.stats.TotalClosed++
	}
	onClose := sm.onClose
	sm.mu.Unlock()

	if ok && onClose != nil {
		onClose(s)
	}
}

// Get returns the session with id, or nil.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Close closes the session with id.
func (sm *SessionManager) Close(id string) error {
	s := sm.Get(id)
	if s == nil {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// Count returns the number of open sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Stats returns a snapshot of the session counters.
func (sm *SessionManager) Stats() ManagerStats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	st := sm.stats
	st.Active = len(sm.sessions)
	return st
}

// SetOnSessionCreate sets a callback run after each session is created.
func (sm *SessionManager) SetOnSessionCreate(fn func(*Session)) {
	sm.mu.Lock()
	sm.onCreate = fn
	sm.mu.Unlock()
}

// SetOnSessionClose sets a callback run after each session closes.
func (sm *SessionManager) SetOnSessionClose(fn func(*Session)) {
	sm.mu.Lock()
	sm.onClose = fn
	sm.mu.Unlock()
}

func (sm *SessionManager) snapshot(keep func(*Session) bool) []*Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		if keep == nil || keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (sm *SessionManager) sweep(ctx context.Context, every time.Duration) {
	defer close(sm.swept)

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			sm.cleanupExpired(now)
		case <-ctx.Done():
			return
		}
	}
}

// cleanupExpired closes the sessions idle at now and returns how many.
func (sm *SessionManager) cleanupExpired(now time.Time) int {
	idle := sm.snapshot(func(s *Session) bool { return s.IsIdle(now) })
	for _, s := range idle {
		s.Close()
	}
	if len(idle) > 0 {
		sm.logger.Info("closed idle sessions", "count", len(idle), "remaining", sm.Count())
	}
	return len(idle)
}

// Shutdown stops the idle sweep and closes every session, giving up when
// ctx is done. It is safe to call more than once.
func (sm *SessionManager) Shutdown(ctx context.Context) error {
	sm.stopSweep()
	select {
	case <-sm.swept:
	case <-ctx.Done():
		return ctx.Err()
	}

	open := sm.snapshot(nil)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		var wg sync.WaitGroup
		for _, s := range open {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Close()
			}()
		}
		wg.Wait()
	}()

	select {
	case <-closed:
		sm.logger.Info("session manager shut down", "closed_sessions", len(open))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
