// internal/bridge/guard.go
package bridge

import (
	"fmt"
	"time"

	"github.com/tamzrod/iracing-bridge/internal/sdk"
)

// DefaultSettle is how long the guard waits after a reconnection attempt
// before re-checking the connected flag.
const DefaultSettle = 100 * time.Millisecond

// Guard owns when the source handle is (re)initialized.
// One re-attempt per call, no backoff: the guard runs fresh on every
// request, so every request is itself a retry.
type Guard struct {
	src    sdk.Source
	settle time.Duration

	// sleep is overridden in tests.
	sleep func(time.Duration)

	lastErr error
}

// NewGuard builds a guard around the source handle.
func NewGuard(src sdk.Source, settle time.Duration) *Guard {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Guard{src: src, settle: settle, sleep: time.Sleep}
}

// EnsureConnected initializes the source if needed, re-attempts once when
// the connection is down, and returns the source's current connected flag.
// It never panics; startup failures are retained for LastError.
func (g *Guard) EnsureConnected() bool {
	g.lastErr = nil

	if !g.src.Initialized() {
		if err := g.src.Startup(); err != nil {
			g.lastErr = fmt.Errorf("source startup: %w", err)
		}
	}

	if !g.src.Connected() {
		if err := g.src.Startup(); err != nil && g.lastErr == nil {
			g.lastErr = fmt.Errorf("source startup: %w", err)
		}
		// Give the connection a moment to settle before re-checking.
		g.sleep(g.settle)
	}

	return g.src.Connected()
}

// LastError reports the startup failure from the most recent
// EnsureConnected call, if any. Consumed by the status endpoint.
func (g *Guard) LastError() error { return g.lastErr }
