// internal/sdk/values.go
package sdk

// Null-coalescing conversions for raw SDK values.
// The SDK reports variables as untyped scalars; before the simulator is
// fully initialized a variable may be absent (nil). Absent or foreign
// types collapse to the documented defaults: numeric 0, boolean false.

// Float coalesces a raw value to float64.
func Float(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return 0
	}
}

// Int coalesces a raw value to int, truncating floats.
func Int(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float64:
		return int(x)
	case float32:
		return int(x)
	default:
		return 0
	}
}

// Bool coalesces a raw value to bool.
func Bool(v any) bool {
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}
