// internal/session/info.go
package session

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the session-info document the simulator publishes alongside
// the live variable buffer. Only the blocks the bridge consumes are mapped;
// the document carries far more, and unknown keys are ignored.
type Document struct {
	Weekend *WeekendInfo `yaml:"WeekendInfo"`
	Drivers *DriverInfo  `yaml:"DriverInfo"`
	Results *ResultsInfo `yaml:"SessionInfo"`
}

// WeekendInfo holds track and session metadata.
type WeekendInfo struct {
	TrackDisplayName string `yaml:"TrackDisplayName"`
	TrackID          int    `yaml:"TrackID"`
	SessionType      string `yaml:"SessionType"`
}

// DriverInfo holds the driver roster and the index of the car the
// client is driving or spectating.
type DriverInfo struct {
	DriverCarIdx int      `yaml:"DriverCarIdx"`
	Drivers      []Driver `yaml:"Drivers"`
}

// Driver is one roster entry.
type Driver struct {
	CarIdx        int    `yaml:"CarIdx"`
	UserName      string `yaml:"UserName"`
	CarScreenName string `yaml:"CarScreenName"`
}

// ResultsInfo holds nested per-session results.
type ResultsInfo struct {
	Sessions []SessionResult `yaml:"Sessions"`
}

// SessionResult is one session's result block.
type SessionResult struct {
	SessionType       string             `yaml:"SessionType"`
	ResultsFastestLap []FastestLapResult `yaml:"ResultsFastestLap"`
}

// FastestLapResult is one fastest-lap entry within a session.
// A FastestTime of 0 means no fastest lap recorded yet, not a valid time.
type FastestLapResult struct {
	CarIdx      int     `yaml:"CarIdx"`
	FastestLap  int     `yaml:"FastestLap"`
	FastestTime float64 `yaml:"FastestTime"`
}

// Parse decodes a raw session-info document.
func Parse(raw string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("session info decode: %w", err)
	}
	return &doc, nil
}

// FastestLap returns the minimum strictly-positive FastestTime across all
// sessions' fastest-lap results. 0 means no fastest lap recorded anywhere.
func (d *Document) FastestLap() float64 {
	if d.Results == nil {
		return 0
	}

	fastest := 0.0
	for _, s := range d.Results.Sessions {
		for _, r := range s.ResultsFastestLap {
			if r.FastestTime <= 0 {
				continue
			}
			if fastest == 0 || r.FastestTime < fastest {
				fastest = r.FastestTime
			}
		}
	}
	return fastest
}

// CurrentDriver resolves the roster entry at DriverCarIdx.
// Returns false when the roster is absent or the index is out of range.
func (d *Document) CurrentDriver() (Driver, bool) {
	if d.Drivers == nil {
		return Driver{}, false
	}
	idx := d.Drivers.DriverCarIdx
	if idx < 0 || idx >= len(d.Drivers.Drivers) {
		return Driver{}, false
	}
	return d.Drivers.Drivers[idx], true
}
