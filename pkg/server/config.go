package server

import (
	"cmp"
	"net/http"
	"net/url"
	"time"
)

// SessionConfig tunes a single live session. Zero fields take the values
// of DefaultSessionConfig.
type SessionConfig struct {
	ReadTimeout       time.Duration // longest silence from the client (60s)
	WriteTimeout      time.Duration // deadline for one outgoing frame (10s)
	IdleTimeout       time.Duration // closes sessions with no activity (5m)
	HeartbeatInterval time.Duration // ping period (30s)
	MaxMessageSize    int64         // largest accepted WebSocket message (64 KiB)
	MaxEventQueue     int           // events buffered ahead of the EventLoop (256)
}

// DefaultSessionConfig returns the default session settings.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       5 * time.Minute,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 << 10,
		MaxEventQueue:     256,
	}
}

// Clone returns a copy of c.
func (c *SessionConfig) Clone() *SessionConfig {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (c *SessionConfig) withDefaults() *SessionConfig {
	d := DefaultSessionConfig()
	if c == nil {
		return d
	}
	return &SessionConfig{
		ReadTimeout:       positive(c.ReadTimeout, d.ReadTimeout),
		WriteTimeout:      positive(c.WriteTimeout, d.WriteTimeout),
		IdleTimeout:       positive(c.IdleTimeout, d.IdleTimeout),
		HeartbeatInterval: positive(c.HeartbeatInterval, d.HeartbeatInterval),
		MaxMessageSize:    positive(c.MaxMessageSize, d.MaxMessageSize),
		MaxEventQueue:     positive(c.MaxEventQueue, d.MaxEventQueue),
	}
}

// ServerConfig configures the HTTP and WebSocket server. Zero fields take
// the values of DefaultServerConfig.
type ServerConfig struct {
	Address string

	// WebSocket buffer sizes.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin vets WebSocket upgrades. Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	SessionConfig *SessionConfig

	// MaxSessions caps concurrent sessions; 0 means unlimited.
	MaxSessions int

	CleanupInterval   time.Duration // idle sweep period
	ShutdownTimeout   time.Duration // bound on graceful shutdown
	ReadHeaderTimeout time.Duration // passed to http.Server

	// Title is the <title> of served pages.
	Title string

	// DebugMode logs handler panic stacks.
	DebugMode bool
}

// DefaultServerConfig returns the default server settings.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":8080",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
		SessionConfig:     DefaultSessionConfig(),
		CleanupInterval:   30 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		Title:             "Tour",
	}
}

func (c *ServerConfig) withDefaults() *ServerConfig {
	d := DefaultServerConfig()
	if c == nil {
		return d
	}
	out := *c
	out.Address = cmp.Or(c.Address, d.Address)
	out.Title = cmp.Or(c.Title, d.Title)
	out.ReadBufferSize = positive(c.ReadBufferSize, d.ReadBufferSize)
	out.WriteBufferSize = positive(c.WriteBufferSize, d.WriteBufferSize)
	out.CleanupInterval = positive(c.CleanupInterval, d.CleanupInterval)
	out.ShutdownTimeout = positive(c.ShutdownTimeout, d.ShutdownTimeout)
	out.ReadHeaderTimeout = positive(c.ReadHeaderTimeout, d.ReadHeaderTimeout)
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	out.SessionConfig = c.SessionConfig.withDefaults()
	return &out
}

func positive[T int | int64 | time.Duration](v, def T) T {
	if v > 0 {
		return v
	}
	return def
}

// SameOriginCheck accepts upgrades whose Origin host matches the request
// host. Requests without an Origin header come from non-browser clients
// and are accepted.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && r.Host != "" && u.Host == r.Host
}
