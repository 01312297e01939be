// internal/sdk/source.go
package sdk

// Source is the narrow boundary to the live simulator SDK.
// The bridge depends on lifecycle flags, keyed scalar lookup and the
// session-info document only; everything else about the SDK is opaque.
type Source interface {
	// Startup initializes the SDK handle. Safe to call repeatedly.
	Startup() error

	// Shutdown releases the SDK handle. Safe to call when not started.
	Shutdown() error

	// Initialized reports whether the SDK handle has been set up.
	Initialized() bool

	// Connected reports whether the simulator is reachable right now.
	Connected() bool

	// Freeze pins the live variable buffer so that subsequent Value
	// calls all read from the same simulation tick.
	Freeze() error

	// Value returns the current value of a named variable.
	// A nil value with a nil error means the variable is not populated
	// yet; callers coalesce it to a type default.
	Value(name string) (any, error)

	// SessionInfo returns the raw session-info document (YAML).
	// An empty document means session metadata is not populated yet.
	SessionInfo() (string, error)
}
