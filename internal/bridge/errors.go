// internal/bridge/errors.go
package bridge

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when the connection guard cannot establish
// a link to the simulator. Handlers map it to 503.
var ErrNotConnected = errors.New("not connected to simulator")

// ErrSessionUnavailable is returned when session metadata has not been
// populated yet. Distinct from ReadError so handlers can choose between
// not-found and read-error responses.
var ErrSessionUnavailable = errors.New("session info not available")

// ReadError wraps an unexpected failure during field extraction.
type ReadError struct {
	Field string
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Field, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ShutdownError wraps a failure during source shutdown.
type ShutdownError struct {
	Err error
}

func (e *ShutdownError) Error() string {
	return fmt.Sprintf("source shutdown: %v", e.Err)
}

func (e *ShutdownError) Unwrap() error { return e.Err }
