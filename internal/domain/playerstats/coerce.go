package playerstats

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

// TimestampLayout renders call-time timestamps as ISO-8601 with millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var timestampParseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// FormatTimestamp renders t the way call-time defaults are written to the backend.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts the timestamp shapes PostgREST and callers produce. Unparseable input yields the zero time.
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampParseLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// coerce converts a raw caller or wire value into the column's Go type.
// The second result is false when the value counts as absent for that kind.
func coerce(kind Kind, raw any) (any, bool) {
	if raw == nil {
		return nil, false
	}
	switch kind {
	case KindInt:
		return asInt(raw), true
	case KindFloat:
		return asFloat(raw), true
	case KindBool:
		return asBool(raw), true
	case KindTime:
		value := asTimestamp(raw)
		return value, value != ""
	default:
		return asString(raw), true
	}
}

func zeroValue(kind Kind) any {
	switch kind {
	case KindInt:
		return 0
	case KindFloat:
		return float64(0)
	case KindBool:
		return false
	default:
		return ""
	}
}

func asInt(raw any) int {
	switch typed := raw.(type) {
	case int:
		return typed
	case int8:
		return int(typed)
	case int16:
		return int(typed)
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case uint:
		return int(typed)
	case uint8:
		return int(typed)
	case uint16:
		return int(typed)
	case uint32:
		return int(typed)
	case uint64:
		return int(typed)
	case float32:
		return int(typed)
	case float64:
		return int(typed)
	case json.Number:
		if v, err := typed.Int64(); err == nil {
			return int(v)
		}
		if v, err := typed.Float64(); err == nil {
			return int(v)
		}
		return 0
	case bool:
		if typed {
			return 1
		}
		return 0
	case string:
		value := strings.TrimSpace(typed)
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return int(v)
		}
		if v, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(v) {
			return int(v)
		}
		return 0
	default:
		return 0
	}
}

func asFloat(raw any) float64 {
	switch typed := raw.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case json.Number:
		v, err := typed.Float64()
		if err != nil {
			return 0
		}
		return v
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return v
	case bool:
		if typed {
			return 1
		}
		return 0
	default:
		return float64(asInt(raw))
	}
}

func asBool(raw any) bool {
	switch typed := raw.(type) {
	case bool:
		return typed
	case string:
		v, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return false
		}
		return v
	default:
		return asFloat(raw) != 0
	}
}

// asString keeps strings as-is and serializes structured values as JSON text,
// since the string columns hold caller-owned serialized lists and structures.
func asString(raw any) string {
	switch typed := raw.(type) {
	case string:
		return typed
	case []byte:
		return string(typed)
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", typed)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case time.Time:
		return FormatTimestamp(typed)
	case fmt.Stringer:
		return typed.String()
	default:
		encoded, err := sonic.MarshalString(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}
		return encoded
	}
}

func asTimestamp(raw any) string {
	switch typed := raw.(type) {
	case time.Time:
		if typed.IsZero() {
			return ""
		}
		return FormatTimestamp(typed)
	case *time.Time:
		if typed == nil || typed.IsZero() {
			return ""
		}
		return FormatTimestamp(*typed)
	case string:
		return strings.TrimSpace(typed)
	default:
		return strings.TrimSpace(asString(raw))
	}
}

// identityString renders a server identity (bigint or uuid) as the string used in id=eq filters.
func identityString(raw any) string {
	switch typed := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) < 1<<53 {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return identityString(float64(typed))
	default:
		return strings.TrimSpace(asString(raw))
	}
}
