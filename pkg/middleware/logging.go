package middleware

import (
	"log/slog"
	"time"

	"github.com/vango-dev/tour/pkg/server"
)

// Logging logs one debug line per event. Failed events log at warn.
func Logging(logger *slog.Logger) server.EventMiddleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ev *server.Event, next func() error) error {
		start := time.Now()
		err := next()

		attrs := []any{
			"event", ev.TypeString(),
			"hid", ev.HID,
			"seq", ev.Seq,
			"patches", ev.PatchCount,
			"duration", time.Since(start),
		}
		if ev.Session != nil {
			attrs = append(attrs, "session_id", ev.Session.ID)
		}

		if err != nil {
			logger.Warn("event failed", append(attrs, "error", err)...)
		} else {
			logger.Debug("event handled", attrs...)
		}
		return err
	}
}
