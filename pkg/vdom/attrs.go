package vdom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/tour/pkg/vango"
)

var booleanAttrs = map[string]bool{
	"async":      true,
	"autofocus":  true,
	"checked":    true,
	"defer":      true,
	"disabled":   true,
	"hidden":     true,
	"multiple":   true,
	"novalidate": true,
	"readonly":   true,
	"required":   true,
	"selected":   true,
}

// IsBooleanAttr reports whether key is an HTML boolean attribute.
func IsBooleanAttr(key string) bool {
	return booleanAttrs[strings.ToLower(key)]
}

// EffectiveAttrs returns the string attributes that should be present on the
// DOM for the given node.
//
// This includes regular attributes and the derived event markers
// (data-on-<event>, data-pd-<event>) the client uses to decide which events
// to forward and which default actions to suppress.
// It omits data-hid, live properties, refs and keys.
func EffectiveAttrs(node *VNode) map[string]string {
	if node == nil || node.Props == nil {
		return nil
	}

	attrs := make(map[string]string)

	for key, value := range node.Props {
		if value == nil || key == "ref" || key == "key" {
			continue
		}
		if strings.HasPrefix(key, "prop:") {
			continue
		}

		if isEventHandler(key) {
			name := strings.ToLower(key[2:])
			attrs["data-on-"+name] = "true"
			if m, ok := value.(vango.ModifiedHandler); ok && m.PreventDefault {
				attrs["data-pd-"+name] = "true"
			}
			continue
		}

		if s, ok := attrValueToString(key, value); ok {
			attrs[key] = s
		}
	}

	return attrs
}

// LiveProps returns the live DOM properties bound with Prop, by name.
func LiveProps(node *VNode) map[string]string {
	if node == nil || node.Props == nil {
		return nil
	}
	var props map[string]string
	for key, value := range node.Props {
		name, ok := strings.CutPrefix(key, "prop:")
		if !ok || value == nil {
			continue
		}
		if props == nil {
			props = make(map[string]string)
		}
		props[name] = propToString(value)
	}
	return props
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func attrValueToString(key string, value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		if IsBooleanAttr(key) {
			return "", v
		}
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// isEventHandler returns true if the key is an event handler (starts with "on").
// Case-insensitive to catch onclick, ONCLICK, onClick.
func isEventHandler(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// propToString converts a prop value to a string for the patch.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
