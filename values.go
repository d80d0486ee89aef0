package localytics

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Traits are the user traits of an identify call.
type Traits map[string]any

func (t Traits) Email() string     { return getString(t, "email") }
func (t Traits) Name() string      { return getString(t, "name") }
func (t Traits) FirstName() string { return getString(t, "firstName") }
func (t Traits) LastName() string  { return getString(t, "lastName") }

// Properties are the properties of a track call.
type Properties map[string]any

// Revenue returns the "revenue" property, or 0 when absent or not numeric.
func (p Properties) Revenue() float64 {
	v, ok := coerceFloat(p["revenue"])
	if !ok {
		return 0
	}
	return v
}

// ToStringMap stringifies every property value.
func (p Properties) ToStringMap() map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = stringValue(v)
	}
	return out
}

// revenueCents converts a decimal amount to cents, truncating toward zero.
func revenueCents(revenue float64) int64 {
	return int64(revenue * 100)
}

func getString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return stringValue(v)
}

// stringValue renders a scalar the way the vendor expects attribute values.
// nil renders as "null"; composite values are rendered as JSON.
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

// coerceInt converts numbers (truncating fractions) and integer strings.
func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		return i, err == nil
	case json.Number:
		i, err := strconv.Atoi(val.String())
		return i, err == nil
	}
	f, ok := coerceFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
