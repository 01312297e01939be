// internal/bridge/snapshot.go
package bridge

import "time"

// timeNow is overridden in tests.
var timeNow = time.Now

// TelemetrySnapshot is one consistent read of the live variable buffer.
// Immutable once constructed; the capture time travels with the snapshot
// so a cached copy still reports when it was actually read.
type TelemetrySnapshot struct {
	Speed             float64 // m/s
	RPM               float64
	Gear              int // -1 reverse, 0 neutral, 1+ forward
	Throttle          float64 // 0-1
	Brake             float64 // 0-1
	Steering          float64 // wheel angle, radians
	LapCurrentLapTime float64 // seconds
	LapLastLapTime    float64 // seconds
	LapNumber         int
	SessionTime       float64 // seconds
	SessionTimeRemain float64 // seconds
	IsOnTrack         bool
	LapDistPct        float64 // 0-1
	TrackLength       float64 // meters
	CapturedAt        time.Time
}

// SessionSnapshot is one read of the session metadata.
type SessionSnapshot struct {
	TrackName        string
	TrackID          int
	SessionType      string
	DriverName       string
	CarName          string
	FastestLap       float64 // seconds, 0 when none recorded
	TrackLength      float64 // meters
	TrackTemperature float64 // Celsius
	AirTemperature   float64 // Celsius
	TrackCondition   string  // "dry" or "wet"
	CapturedAt       time.Time
}

// Status reports the connection state as seen by the guard.
// It is polled fresh on every call and never cached.
type Status struct {
	Connected   bool
	Initialized bool
	Err         error
	At          time.Time
}
