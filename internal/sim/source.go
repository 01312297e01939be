// internal/sim/source.go
package sim

import (
	"errors"
	"math"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/iracing-bridge/internal/session"
)

// Source is a simulated telemetry source. It fabricates plausible lap
// telemetry for a fixed circuit so the bridge can be developed and
// exercised without the simulator running. It implements sdk.Source.
type Source struct {
	mu          sync.Mutex
	initialized bool
	connected   bool
	startedAt   time.Time

	// frozen holds the tick pinned by the last Freeze call. Value reads
	// come from here so multi-field reads stay torn-read free.
	frozen map[string]any

	// now is overridden in tests.
	now func() time.Time
}

// Fixed circuit the simulation drives.
const (
	trackName     = "Okayama International Circuit"
	trackID       = 166
	trackLengthKm = 3.7
	lapSeconds    = 98.0
	sessionLength = 3600.0
	driverName    = "Sim Driver"
	carName       = "Mazda MX-5 Cup"
)

var errNotConnected = errors.New("sim: not connected")

// New builds a cold simulated source; Startup connects it.
func New() *Source {
	return &Source{now: time.Now}
}

func (s *Source) Startup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		s.initialized = true
		s.startedAt = s.now()
	}
	s.connected = true
	return nil
}

func (s *Source) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	s.initialized = false
	s.frozen = nil
	return nil
}

func (s *Source) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *Source) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Freeze pins the current tick; subsequent Value calls read from it.
func (s *Source) Freeze() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return errNotConnected
	}
	s.frozen = s.tick()
	return nil
}

// Value returns a named variable from the pinned tick, pinning one
// first if Freeze has not been called yet.
func (s *Source) Value(name string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil, errNotConnected
	}
	if s.frozen == nil {
		s.frozen = s.tick()
	}
	return s.frozen[name], nil
}

// SessionInfo marshals the synthetic session-info document.
func (s *Source) SessionInfo() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return "", errNotConnected
	}

	elapsed := s.now().Sub(s.startedAt).Seconds()
	doc := session.Document{
		Weekend: &session.WeekendInfo{
			TrackDisplayName: trackName,
			TrackID:          trackID,
			SessionType:      "Practice",
		},
		Drivers: &session.DriverInfo{
			DriverCarIdx: 0,
			Drivers: []session.Driver{
				{CarIdx: 0, UserName: driverName, CarScreenName: carName},
			},
		},
		Results: &session.ResultsInfo{
			Sessions: []session.SessionResult{
				{
					SessionType:       "Practice",
					ResultsFastestLap: fastestLapResults(elapsed),
				},
			},
		},
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// fastestLapResults reports no fastest lap until the first simulated
// lap completes, then a steady best.
func fastestLapResults(elapsed float64) []session.FastestLapResult {
	if elapsed < lapSeconds {
		return []session.FastestLapResult{{CarIdx: 0, FastestLap: 0, FastestTime: 0}}
	}
	return []session.FastestLapResult{{CarIdx: 0, FastestLap: 1, FastestTime: lapSeconds - 1.2}}
}

// tick fabricates one consistent set of live variables from elapsed
// session time. Callers hold the lock.
func (s *Source) tick() map[string]any {
	elapsed := s.now().Sub(s.startedAt).Seconds()
	lapTime := math.Mod(elapsed, lapSeconds)
	lapPct := lapTime / lapSeconds
	lap := int(elapsed/lapSeconds) + 1

	// A couple of corner/straight cycles per lap.
	phase := 2 * math.Pi * lapPct * 5
	speed := 46 + 16*math.Sin(phase) // m/s
	throttle := clamp01(0.55 + 0.45*math.Sin(phase))
	brake := clamp01(-0.8 * math.Sin(phase))

	lastLap := 0.0
	if lap > 1 {
		lastLap = lapSeconds
	}

	return map[string]any{
		"Speed":              speed,
		"RPM":                3200 + speed*62,
		"Gear":               gearFor(speed),
		"Throttle":           throttle,
		"Brake":              brake,
		"SteeringWheelAngle": 0.35 * math.Sin(phase/2),
		"LapCurrentLapTime":  lapTime,
		"LapLastLapTime":     lastLap,
		"Lap":                lap,
		"SessionTime":        elapsed,
		"SessionTimeRemain":  math.Max(0, sessionLength-elapsed),
		"IsOnTrack":          true,
		"LapDistPct":         lapPct,
		"TrackLength":        trackLengthKm,
		"TrackTempCrew":      31.5,
		"AirTemp":            22.0,
		"TrackWetness":       session.WetnessDry,
	}
}

func gearFor(speed float64) int {
	g := int(speed / 12)
	if g < 1 {
		return 1
	}
	if g > 6 {
		return 6
	}
	return g
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
