// internal/bridge/guard_test.go
package bridge

import (
	"errors"
	"testing"
	"time"
)

// fakeSource scripts the source boundary for all bridge tests.
type fakeSource struct {
	initialized bool
	connected   bool

	// connectAfterStartups makes Connected flip true once Startup has
	// been called this many times. 0 means Startup connects immediately.
	connectAfterStartups int

	startupErr  error
	shutdownErr error
	freezeErr   error
	valueErr    error

	values      map[string]any
	sessionYAML string
	sessionErr  error

	startupCalls int
	freezeCalls  int
	valueCalls   int
}

func (f *fakeSource) Startup() error {
	f.startupCalls++
	if f.startupErr != nil {
		return f.startupErr
	}
	f.initialized = true
	if f.startupCalls > f.connectAfterStartups {
		f.connected = true
	}
	return nil
}

func (f *fakeSource) Shutdown() error {
	if f.shutdownErr != nil {
		return f.shutdownErr
	}
	f.initialized = false
	f.connected = false
	return nil
}

func (f *fakeSource) Initialized() bool { return f.initialized }
func (f *fakeSource) Connected() bool   { return f.connected }

func (f *fakeSource) Freeze() error {
	f.freezeCalls++
	return f.freezeErr
}

func (f *fakeSource) Value(name string) (any, error) {
	f.valueCalls++
	if f.valueErr != nil {
		return nil, f.valueErr
	}
	return f.values[name], nil
}

func (f *fakeSource) SessionInfo() (string, error) {
	if f.sessionErr != nil {
		return "", f.sessionErr
	}
	return f.sessionYAML, nil
}

// guardWithRecorder replaces the settle sleep with a recorder.
func guardWithRecorder(src *fakeSource, settle time.Duration) (*Guard, *[]time.Duration) {
	g := NewGuard(src, settle)
	var slept []time.Duration
	g.sleep = func(d time.Duration) { slept = append(slept, d) }
	return g, &slept
}

func TestGuard_ConnectsFromCold(t *testing.T) {
	src := &fakeSource{}
	g, slept := guardWithRecorder(src, 50*time.Millisecond)

	if !g.EnsureConnected() {
		t.Fatal("expected connected")
	}
	if src.startupCalls != 1 {
		t.Fatalf("startupCalls=%d, want 1", src.startupCalls)
	}
	if len(*slept) != 0 {
		t.Fatalf("no settle expected when startup connects, slept=%v", *slept)
	}
	if g.LastError() != nil {
		t.Fatalf("LastError()=%v", g.LastError())
	}
}

func TestGuard_ReattemptsWithSettle(t *testing.T) {
	src := &fakeSource{connectAfterStartups: 1}
	g, slept := guardWithRecorder(src, 50*time.Millisecond)

	if !g.EnsureConnected() {
		t.Fatal("expected connected after re-attempt")
	}
	if src.startupCalls != 2 {
		t.Fatalf("startupCalls=%d, want 2", src.startupCalls)
	}
	if len(*slept) != 1 || (*slept)[0] != 50*time.Millisecond {
		t.Fatalf("settle sleep=%v, want one 50ms sleep", *slept)
	}
}

func TestGuard_AlreadyConnectedIsNoop(t *testing.T) {
	src := &fakeSource{initialized: true, connected: true}
	g, slept := guardWithRecorder(src, time.Millisecond)

	if !g.EnsureConnected() {
		t.Fatal("expected connected")
	}
	if src.startupCalls != 0 {
		t.Fatalf("startupCalls=%d, want 0", src.startupCalls)
	}
	if len(*slept) != 0 {
		t.Fatalf("slept=%v, want none", *slept)
	}
}

func TestGuard_StartupFailureIsRetained(t *testing.T) {
	boom := errors.New("shared memory unavailable")
	src := &fakeSource{startupErr: boom}
	g, _ := guardWithRecorder(src, time.Millisecond)

	if g.EnsureConnected() {
		t.Fatal("expected disconnected")
	}
	if !errors.Is(g.LastError(), boom) {
		t.Fatalf("LastError()=%v, want wrapped %v", g.LastError(), boom)
	}

	// A later successful call clears the retained error.
	src.startupErr = nil
	if !g.EnsureConnected() {
		t.Fatal("expected connected once startup recovers")
	}
	if g.LastError() != nil {
		t.Fatalf("LastError()=%v, want nil after recovery", g.LastError())
	}
}

func TestGuard_DefaultSettle(t *testing.T) {
	g := NewGuard(&fakeSource{}, 0)
	if g.settle != DefaultSettle {
		t.Fatalf("settle=%v, want %v", g.settle, DefaultSettle)
	}
}
