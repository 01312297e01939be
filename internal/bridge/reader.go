// internal/bridge/reader.go
package bridge

import (
	"strings"

	"github.com/tamzrod/iracing-bridge/internal/sdk"
	"github.com/tamzrod/iracing-bridge/internal/session"
)

// Reader pulls consistent snapshots out of the source.
// Reads are all-or-nothing: any source failure aborts the snapshot.
type Reader struct {
	src sdk.Source
}

// NewReader builds a reader over the source handle.
func NewReader(src sdk.Source) *Reader {
	return &Reader{src: src}
}

// fieldReader reads coalesced values and retains the first failure.
// After an error every read returns the zero value.
type fieldReader struct {
	src sdk.Source
	err error
}

func (f *fieldReader) float(name string) float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.src.Value(name)
	if err != nil {
		f.err = &ReadError{Field: name, Err: err}
		return 0
	}
	return sdk.Float(v)
}

func (f *fieldReader) integer(name string) int {
	if f.err != nil {
		return 0
	}
	v, err := f.src.Value(name)
	if err != nil {
		f.err = &ReadError{Field: name, Err: err}
		return 0
	}
	return sdk.Int(v)
}

func (f *fieldReader) boolean(name string) bool {
	if f.err != nil {
		return false
	}
	v, err := f.src.Value(name)
	if err != nil {
		f.err = &ReadError{Field: name, Err: err}
		return false
	}
	return sdk.Bool(v)
}

// intOr reads an integer code, keeping def when the value is absent.
func (f *fieldReader) intOr(name string, def int) int {
	if f.err != nil {
		return def
	}
	v, err := f.src.Value(name)
	if err != nil {
		f.err = &ReadError{Field: name, Err: err}
		return def
	}
	if v == nil {
		return def
	}
	return sdk.Int(v)
}

// ReadTelemetry produces a fresh telemetry snapshot.
// The variable buffer is frozen first so all fields reflect one tick.
func (r *Reader) ReadTelemetry() (TelemetrySnapshot, error) {
	if err := r.src.Freeze(); err != nil {
		return TelemetrySnapshot{}, &ReadError{Field: "freeze", Err: err}
	}

	f := &fieldReader{src: r.src}
	snap := TelemetrySnapshot{
		Speed:             f.float("Speed"),
		RPM:               f.float("RPM"),
		Gear:              f.integer("Gear"),
		Throttle:          f.float("Throttle"),
		Brake:             f.float("Brake"),
		Steering:          f.float("SteeringWheelAngle"),
		LapCurrentLapTime: f.float("LapCurrentLapTime"),
		LapLastLapTime:    f.float("LapLastLapTime"),
		LapNumber:         f.integer("Lap"),
		SessionTime:       f.float("SessionTime"),
		SessionTimeRemain: f.float("SessionTimeRemain"),
		IsOnTrack:         f.boolean("IsOnTrack"),
		LapDistPct:        f.float("LapDistPct"),
		// The source reports track length in kilometers.
		TrackLength: f.float("TrackLength") * 1000,
		CapturedAt:  timeNow(),
	}
	if f.err != nil {
		return TelemetrySnapshot{}, f.err
	}
	return snap, nil
}

// ReadSession produces a fresh session snapshot.
// Missing weekend or driver metadata yields ErrSessionUnavailable;
// every other failure is a ReadError.
func (r *Reader) ReadSession() (SessionSnapshot, error) {
	raw, err := r.src.SessionInfo()
	if err != nil {
		return SessionSnapshot{}, &ReadError{Field: "SessionInfo", Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return SessionSnapshot{}, ErrSessionUnavailable
	}

	doc, err := session.Parse(raw)
	if err != nil {
		return SessionSnapshot{}, &ReadError{Field: "SessionInfo", Err: err}
	}
	if doc.Weekend == nil || doc.Drivers == nil {
		return SessionSnapshot{}, ErrSessionUnavailable
	}

	f := &fieldReader{src: r.src}
	trackLengthKm := f.float("TrackLength")

	// Freeze before the live-variable reads so the temperatures and the
	// wetness code come from the same tick.
	if err := r.src.Freeze(); err != nil {
		return SessionSnapshot{}, &ReadError{Field: "freeze", Err: err}
	}

	trackTemp := f.float("TrackTempCrew")
	airTemp := f.float("AirTemp")
	wetness := f.intOr("TrackWetness", session.WetnessDry)
	if f.err != nil {
		return SessionSnapshot{}, f.err
	}

	driverName, carName := "Unknown", "Unknown"
	if drv, ok := doc.CurrentDriver(); ok {
		driverName = drv.UserName
		carName = drv.CarScreenName
	}

	return SessionSnapshot{
		TrackName:        orUnknown(doc.Weekend.TrackDisplayName),
		TrackID:          doc.Weekend.TrackID,
		SessionType:      orUnknown(doc.Weekend.SessionType),
		DriverName:       driverName,
		CarName:          carName,
		FastestLap:       doc.FastestLap(),
		TrackLength:      trackLengthKm * 1000,
		TrackTemperature: trackTemp,
		AirTemperature:   airTemp,
		TrackCondition:   session.TrackCondition(wetness),
		CapturedAt:       timeNow(),
	}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
