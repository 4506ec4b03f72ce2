package config

import (
	"strconv"
	"strings"

	"github.com/vango-dev/tour/internal/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TOUR_"

// ApplyEnv overrides fields from TOUR_* variables read through getenv.
//
//	TOUR_ADDR, TOUR_ROOT, TOUR_TITLE, TOUR_DEBUG, TOUR_MAX_SESSIONS
//	TOUR_LOG_LEVEL, TOUR_LOG_FORMAT
//	TOUR_METRICS, TOUR_TRACING
//	TOUR_PUBLISH_BUCKET, TOUR_PUBLISH_PREFIX, TOUR_PUBLISH_REGION, TOUR_PUBLISH_ENDPOINT
func (c *Config) ApplyEnv(getenv func(string) string) error {
	get := func(name string) (string, bool) {
		v := strings.TrimSpace(getenv(EnvPrefix + name))
		return v, v != ""
	}

	strs := map[string]*string{
		"ADDR":             &c.Server.Address,
		"ROOT":             &c.Server.Root,
		"TITLE":            &c.Server.Title,
		"LOG_LEVEL":        &c.Log.Level,
		"LOG_FORMAT":       &c.Log.Format,
		"PUBLISH_BUCKET":   &c.Publish.Bucket,
		"PUBLISH_PREFIX":   &c.Publish.Prefix,
		"PUBLISH_REGION":   &c.Publish.Region,
		"PUBLISH_ENDPOINT": &c.Publish.Endpoint,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"DEBUG":   &c.Server.Debug,
		"METRICS": &c.Metrics.Enabled,
		"TRACING": &c.Tracing.Enabled,
	}
	for _, name := range sortedKeys(bools) {
		v, ok := get(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("E003").
				WithDetail("%s%s must be a boolean, got %q.", EnvPrefix, name, v)
		}
		*bools[name] = b
	}

	if v, ok := get("MAX_SESSIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("E003").
				WithDetail("%sMAX_SESSIONS must be an integer, got %q.", EnvPrefix, v)
		}
		c.Server.MaxSessions = n
	}
	return nil
}
