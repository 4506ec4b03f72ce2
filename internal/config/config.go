package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/tour/internal/errors"
	"github.com/vango-dev/tour/pkg/server"
)

const (
	// FileName is the name of the configuration file.
	FileName = "tour.yaml"

	// DefaultAddress is the default listen address.
	DefaultAddress = ":8080"

	// DefaultRoot is the root served when a request names none.
	DefaultRoot = "form"
)

// Config is the complete tour.yaml configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	Publish PublishConfig `yaml:"publish"`

	// path is where the config was loaded from.
	path string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Address is the listen address.
	Address string `yaml:"address,omitempty"`

	// Root is the default root widget.
	Root string `yaml:"root,omitempty"`

	// Title is the document title.
	Title string `yaml:"title,omitempty"`

	// MaxSessions limits concurrent live sessions. Zero means no limit.
	MaxSessions int `yaml:"max_sessions,omitempty"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`

	// Debug enables verbose logging and handler stack traces.
	Debug bool `yaml:"debug,omitempty"`
}

// SessionConfig configures live sessions.
type SessionConfig struct {
	ReadTimeout       time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout      time.Duration `yaml:"write_timeout,omitempty"`
	IdleTimeout       time.Duration `yaml:"idle_timeout,omitempty"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval,omitempty"`
	MaxMessageSize    int64         `yaml:"max_message_size,omitempty"`
	MaxEventQueue     int           `yaml:"max_event_queue,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace,omitempty"`
}

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name,omitempty"`
}

// PublishConfig configures snapshot publishing.
type PublishConfig struct {
	Bucket       string `yaml:"bucket,omitempty"`
	Prefix       string `yaml:"prefix,omitempty"`
	Region       string `yaml:"region,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	CacheControl string `yaml:"cache_control,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	sc := server.DefaultServerConfig()
	sess := server.DefaultSessionConfig()

	return &Config{
		Server: ServerConfig{
			Address:         DefaultAddress,
			Root:            DefaultRoot,
			Title:           sc.Title,
			ShutdownTimeout: sc.ShutdownTimeout,
		},
		Session: SessionConfig{
			ReadTimeout:       sess.ReadTimeout,
			WriteTimeout:      sess.WriteTimeout,
			IdleTimeout:       sess.IdleTimeout,
			HeartbeatInterval: sess.HeartbeatInterval,
			MaxMessageSize:    sess.MaxMessageSize,
			MaxEventQueue:     sess.MaxEventQueue,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "tour",
		},
		Tracing: TracingConfig{
			Name: "tour",
		},
	}
}

// Load reads tour.yaml from dir if present. A missing file yields the
// defaults.
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if err != nil {
		var te *errors.TourError
		if stderrors.As(err, &te) && stderrors.Is(te.Wrapped, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the configuration at path. Fields the file omits keep
// their defaults; unknown fields are an error.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E040").
			WithDetail("Failed to open %s.", path).
			Wrap(err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.New("E041").
			WithSuggestion("Check " + filepath.Base(path) + " against the documented fields").
			Wrap(err)
	}

	cfg.path = path
	return cfg, nil
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks the configuration. roots lists the registered root
// names the default root must be one of.
func (c *Config) Validate(roots []string) error {
	invalid := func(format string, args ...any) *errors.TourError {
		return errors.New("E003").WithDetail(format, args...)
	}

	if strings.TrimSpace(c.Server.Address) == "" {
		return invalid("server.address must not be empty.")
	}
	if len(roots) > 0 && !slices.Contains(roots, c.Server.Root) {
		return errors.UnknownRoot(c.Server.Root, roots)
	}
	if c.Server.MaxSessions < 0 {
		return invalid("server.max_sessions must not be negative, got %d.", c.Server.MaxSessions)
	}
	if c.Server.ShutdownTimeout < 0 {
		return invalid("server.shutdown_timeout must not be negative.")
	}

	durations := map[string]time.Duration{
		"session.read_timeout":       c.Session.ReadTimeout,
		"session.write_timeout":      c.Session.WriteTimeout,
		"session.idle_timeout":       c.Session.IdleTimeout,
		"session.heartbeat_interval": c.Session.HeartbeatInterval,
	}
	for _, name := range sortedKeys(durations) {
		if durations[name] <= 0 {
			return invalid("%s must be positive, got %s.", name, durations[name])
		}
	}
	if c.Session.HeartbeatInterval >= c.Session.ReadTimeout {
		return invalid("session.heartbeat_interval (%s) must be shorter than session.read_timeout (%s).",
			c.Session.HeartbeatInterval, c.Session.ReadTimeout)
	}
	if c.Session.MaxEventQueue <= 0 {
		return invalid("session.max_event_queue must be positive, got %d.", c.Session.MaxEventQueue)
	}
	if c.Session.MaxMessageSize <= 0 {
		return invalid("session.max_message_size must be positive, got %d.", c.Session.MaxMessageSize)
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		return invalid("log.level must be one of %s, got %q.", strings.Join(logLevels, ", "), c.Log.Level).
			WithSuggestion(suggestion(c.Log.Level, logLevels))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return invalid("log.format must be one of %s, got %q.", strings.Join(logFormats, ", "), c.Log.Format).
			WithSuggestion(suggestion(c.Log.Format, logFormats))
	}
	return nil
}

func suggestion(input string, options []string) string {
	if s := errors.Suggest(input, options); s != "" {
		return "Did you mean \"" + s + "\"?"
	}
	return ""
}

// ServerConfig converts the configuration for server.New.
func (c *Config) ServerConfig() *server.ServerConfig {
	sc := server.DefaultServerConfig()
	sc.Address = c.Server.Address
	sc.MaxSessions = c.Server.MaxSessions
	sc.DebugMode = c.Server.Debug
	if c.Server.Title != "" {
		sc.Title = c.Server.Title
	}
	if c.Server.ShutdownTimeout > 0 {
		sc.ShutdownTimeout = c.Server.ShutdownTimeout
	}

	sc.SessionConfig = &server.SessionConfig{
		ReadTimeout:       c.Session.ReadTimeout,
		WriteTimeout:      c.Session.WriteTimeout,
		IdleTimeout:       c.Session.IdleTimeout,
		HeartbeatInterval: c.Session.HeartbeatInterval,
		MaxMessageSize:    c.Session.MaxMessageSize,
		MaxEventQueue:     c.Session.MaxEventQueue,
	}
	return sc
}

// SlogLevel returns the configured log level. Debug mode forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Server.Debug {
		return slog.LevelDebug
	}
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
