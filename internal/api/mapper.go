// internal/api/mapper.go
package api

import (
	"time"

	"github.com/tamzrod/iracing-bridge/internal/bridge"
)

// unixSeconds converts a capture time to the wire representation.
func unixSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / float64(time.Second)
}

// FromStatus converts the guard's view into the public status payload.
func FromStatus(st bridge.Status) StatusResponse {
	resp := StatusResponse{
		Connected:   st.Connected,
		Initialized: st.Initialized,
		Timestamp:   unixSeconds(st.At),
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	return resp
}

// FromTelemetrySnapshot converts a telemetry snapshot to its public view.
// A cached snapshot keeps its original capture timestamp, which is how
// clients can tell stale data from fresh.
func FromTelemetrySnapshot(s bridge.TelemetrySnapshot) TelemetryResponse {
	return TelemetryResponse{
		Speed:             s.Speed,
		RPM:               s.RPM,
		Gear:              s.Gear,
		Throttle:          s.Throttle,
		Brake:             s.Brake,
		Steering:          s.Steering,
		LapCurrentLapTime: s.LapCurrentLapTime,
		LapLastLapTime:    s.LapLastLapTime,
		LapNumber:         s.LapNumber,
		SessionTime:       s.SessionTime,
		SessionTimeRemain: s.SessionTimeRemain,
		IsOnTrack:         s.IsOnTrack,
		LapDistPct:        s.LapDistPct,
		TrackLength:       s.TrackLength,
		Timestamp:         unixSeconds(s.CapturedAt),
	}
}

// FromSessionSnapshot converts a session snapshot to its public view.
func FromSessionSnapshot(s bridge.SessionSnapshot) SessionResponse {
	return SessionResponse{
		TrackName:        s.TrackName,
		TrackID:          s.TrackID,
		SessionType:      s.SessionType,
		DriverName:       s.DriverName,
		CarName:          s.CarName,
		FastestLap:       s.FastestLap,
		TrackLength:      s.TrackLength,
		TrackTemperature: s.TrackTemperature,
		AirTemperature:   s.AirTemperature,
		TrackCondition:   s.TrackCondition,
		Timestamp:        unixSeconds(s.CapturedAt),
	}
}
