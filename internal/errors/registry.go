package errors

import (
	stderrors "errors"
	"sort"

	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/publish"
	"github.com/vango-dev/tour/pkg/server"
	"github.com/vango-dev/tour/pkg/vango"
)

// Template defines a registered error.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]Template{
	// Runtime (E001-E019)
	"E001": {
		Category: CategoryRuntime,
		Message:  "Element reference not resolved",
		Detail:   "A handler read a node ref before the element it is bound to was mounted, or after it left the tree.",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Unknown root widget",
		Detail:   "The requested root is not registered with the server.",
	},
	"E003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration failed validation.",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Handler panicked",
		Detail:   "An event handler panicked. The event was aborted; the session keeps running.",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Session closed",
		Detail:   "The session was closed before the operation completed.",
	},
	"E006": {
		Category: CategoryRuntime,
		Message:  "Session limit reached",
		Detail:   "The server refused a new session because the configured maximum is active.",
	},

	// Protocol (E020-E039)
	"E020": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "A frame could not be decoded. Its header or JSON payload is malformed.",
	},
	"E021": {
		Category: CategoryProtocol,
		Message:  "Frame too large",
		Detail:   "A frame payload exceeds the protocol limit of 65535 bytes.",
	},

	// Config (E040-E059)
	"E040": {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
	},
	"E041": {
		Category: CategoryConfig,
		Message:  "Cannot parse config file",
		Detail:   "The config file is not valid YAML or has fields of the wrong type.",
	},

	// Publish (E060-E079)
	"E060": {
		Category: CategoryPublish,
		Message:  "No bucket configured",
		Detail:   "Publishing needs a destination bucket.",
	},
	"E061": {
		Category: CategoryPublish,
		Message:  "Missing AWS credentials",
		Detail:   "Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, and AWS_SESSION_TOKEN for temporary credentials.",
	},
	"E062": {
		Category: CategoryPublish,
		Message:  "Upload failed",
	},

	// CLI (E080-E099)
	"E080": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
	"E081": {
		Category: CategoryCLI,
		Message:  "Render failed",
	},
}

// sentinels maps runtime errors to codes, most specific first.
var sentinels = []struct {
	err  error
	code string
}{
	{vango.ErrRefUnresolved, "E001"},
	{server.ErrUnknownRoot, "E002"},
	{server.ErrSessionClosed, "E005"},
	{server.ErrMaxSessionsReached, "E006"},
	{protocol.ErrFrameTooLarge, "E021"},
	{protocol.ErrInvalidFrameType, "E020"},
	{protocol.ErrPayloadMismatch, "E020"},
	{publish.ErrNoBucket, "E060"},
	{publish.ErrNoCredentials, "E061"},
}

// Classify returns the code for a known runtime error, or "".
func Classify(err error) string {
	if err == nil {
		return ""
	}
	for _, s := range sentinels {
		if stderrors.Is(err, s.err) {
			return s.code
		}
	}
	var herr *server.HandlerError
	if stderrors.As(err, &herr) {
		return "E004"
	}
	return ""
}

// Lookup returns the template for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
