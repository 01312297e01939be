// internal/api/types.go
package api

import "time"

// Public JSON types returned by the API. They are decoupled from the
// internal snapshot types so the wire format stays stable across
// internal refactors. Timestamps on the wire are UNIX seconds as
// float64, matching what the deployed desktop client parses.

// ServiceName and ServiceVersion identify the bridge in GET /.
const (
	ServiceName    = "iRacing Telemetry Bridge"
	ServiceVersion = "1.0.0"
)

// RootResponse is the payload for GET /.
type RootResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// StatusResponse is the payload for GET /status. It is always served
// with HTTP 200; a guard failure shows up in Error instead.
type StatusResponse struct {
	Connected   bool    `json:"connected"`
	Initialized bool    `json:"initialized"`
	Timestamp   float64 `json:"timestamp"`
	Error       string  `json:"error,omitempty"`
}

// TelemetryResponse is the payload for GET /telemetry.
type TelemetryResponse struct {
	Speed             float64 `json:"speed"`
	RPM               float64 `json:"rpm"`
	Gear              int     `json:"gear"`
	Throttle          float64 `json:"throttle"`
	Brake             float64 `json:"brake"`
	Steering          float64 `json:"steering"`
	LapCurrentLapTime float64 `json:"lapCurrentLapTime"`
	LapLastLapTime    float64 `json:"lapLastLapTime"`
	LapNumber         int     `json:"lapNumber"`
	SessionTime       float64 `json:"sessionTime"`
	SessionTimeRemain float64 `json:"sessionTimeRemain"`
	IsOnTrack         bool    `json:"isOnTrack"`
	LapDistPct        float64 `json:"lapDistPct"`
	TrackLength       float64 `json:"trackLength"`
	Timestamp         float64 `json:"timestamp"`
}

// SessionResponse is the payload for GET /session.
type SessionResponse struct {
	TrackName        string  `json:"trackName"`
	TrackID          int     `json:"trackId"`
	SessionType      string  `json:"sessionType"`
	DriverName       string  `json:"driverName"`
	CarName          string  `json:"carName"`
	FastestLap       float64 `json:"fastestLap"`
	TrackLength      float64 `json:"trackLength"`
	TrackTemperature float64 `json:"trackTemperature"`
	AirTemperature   float64 `json:"airTemperature"`
	TrackCondition   string  `json:"trackCondition"`
	Timestamp        float64 `json:"timestamp"`
}

// DisconnectResponse is the payload for POST /disconnect.
type DisconnectResponse struct {
	Status string `json:"status"`
}

// APIError is the standard error payload.
type APIError struct {
	Error     string  `json:"error"`
	Timestamp float64 `json:"timestamp"`
}

// TimeNow abstracts time for tests; overridden in tests.
var TimeNow = func() time.Time { return time.Now() }
