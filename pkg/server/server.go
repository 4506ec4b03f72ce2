package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clientdist "github.com/vango-dev/tour/client/dist"
	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/render"
	"github.com/vango-dev/tour/pkg/vango"
)

// Server is the HTTP/WebSocket server for the tour.
type Server struct {
	config   *ServerConfig
	sessions *SessionManager

	roots       map[string]RootFunc
	defaultRoot string

	middleware []EventMiddleware
	gatherer   prometheus.Gatherer

	upgrader   websocket.Upgrader
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server with the given configuration.
func New(config *ServerConfig) *Server {
	config = config.withDefaults()
	vango.DebugMode = config.DebugMode

	s := &Server{
		config:   config,
		sessions: NewSessionManager(config.SessionConfig, config.MaxSessions, config.CleanupInterval, slog.Default()),
		roots:    make(map[string]RootFunc),
		gatherer: prometheus.DefaultGatherer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: slog.Default().With("component", "server"),
	}
	return s
}

// Register adds a named root widget. The first registered root is the
// default until SetDefaultRoot is called.
func (s *Server) Register(name string, root RootFunc) {
	s.roots[name] = root
	if s.defaultRoot == "" {
		s.defaultRoot = name
	}
}

// SetDefaultRoot selects the root served when a request names none.
func (s *Server) SetDefaultRoot(name string) error {
	if _, ok := s.roots[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoot, name)
	}
	s.defaultRoot = name
	return nil
}

// DefaultRoot returns the name of the default root.
func (s *Server) DefaultRoot() string {
	return s.defaultRoot
}

// Use appends event middleware applied to every session.
func (s *Server) Use(mw ...EventMiddleware) {
	s.middleware = append(s.middleware, mw...)
}

// SetGatherer sets the registry served at /metrics.
func (s *Server) SetGatherer(g prometheus.Gatherer) {
	if g != nil {
		s.gatherer = g
	}
}

// SetLogger replaces the server logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger.With("component", "server")
		s.sessions.setLogger(logger)
	}
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Handler returns the HTTP handler serving pages, the live endpoint, the
// client script, health and metrics.
func (s *Server) Handler() http.Handler {
	if s.router != nil {
		return s.router
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get(render.DefaultLivePath, s.HandleWebSocket)
	r.Get(render.DefaultClientScript, s.handleClientScript)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router = r
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler().ServeHTTP(w, r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// resolveRoot picks the root named by the "root" query parameter or the
// default root.
func (s *Server) resolveRoot(r *http.Request) (string, RootFunc, error) {
	name := r.URL.Query().Get("root")
	if name == "" {
		name = s.defaultRoot
	}
	root, ok := s.roots[name]
	if !ok {
		return name, nil, fmt.Errorf("%w: %q", ErrUnknownRoot, name)
	}
	return name, root, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	defer vango.ReleaseGoroutine()

	name, root, err := s.resolveRoot(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	live := render.DefaultLivePath + "?root=" + url.QueryEscape(name)
	var buf bytes.Buffer
	if err := RenderRootPage(&buf, name, root, PageOptions{Title: s.config.Title, LiveURL: live}); err != nil {
		s.logger.Error("page render failed", "root", name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// HandleWebSocket upgrades the connection, creates a session, mounts the
// requested root and starts the session loops.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	defer vango.ReleaseGoroutine()

	name, root, err := s.resolveRoot(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	session, err := s.sessions.Create(conn)
	if err != nil {
		s.logger.Warn("session rejected", "error", err)
		code := protocol.ErrServerError
		if errors.Is(err, ErrMaxSessionsReached) {
			code = protocol.ErrSessionLimit
		}
		if data, encErr := protocol.EncodeErrorMessage(&protocol.ErrorMessage{
			Code:    code,
			Message: err.Error(),
			Fatal:   true,
		}); encErr == nil {
			_ = conn.WriteMessage(websocket.BinaryMessage, data)
		}
		_ = conn.Close()
		return
	}

	session.SetDebug(s.config.DebugMode)
	session.Use(s.middleware...)

	if err := session.MountRoot(name, root); err != nil {
		session.logger.Error("mount failed", "root", name, "error", err)
		session.sendError(protocol.ErrServerError, "mount failed", true)
		session.Close()
		return
	}

	session.Start()
}

func (s *Server) handleClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write(clientdist.TourJS)
}

// healthResponse is the body of /healthz.
type healthResponse struct {
	Status   string   `json:"status"`
	Sessions int      `json:"sessions"`
	Roots    []string `json:"roots"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	roots := make([]string, 0, len(s.roots))
	for name := range s.roots {
		roots = append(roots, name)
	}
	sort.Strings(roots)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:   "ok",
		Sessions: s.sessions.Count(),
		Roots:    roots,
	})
}

// Run starts the server and blocks until ctx is done, an interrupt arrives,
// or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	if len(s.roots) == 0 {
		return ErrUnknownRoot
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "root", s.defaultRoot)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-shutdown:
		s.logger.Info("shutting down...")
	case <-ctx.Done():
		s.logger.Info("context done, shutting down...")
	}
	return s.Shutdown(context.Background())
}

// Shutdown closes every session, then stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.sessions.Shutdown(ctx); err != nil {
		s.logger.Warn("session shutdown incomplete", "error", err)
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
