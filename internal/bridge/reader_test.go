// internal/bridge/reader_test.go
package bridge

import (
	"errors"
	"testing"
	"time"
)

const testSessionYAML = `
WeekendInfo:
  TrackDisplayName: Road Atlanta
  TrackID: 127
  SessionType: Race
DriverInfo:
  DriverCarIdx: 0
  Drivers:
    - CarIdx: 0
      UserName: Test Driver
      CarScreenName: Test Car
SessionInfo:
  Sessions:
    - ResultsFastestLap:
        - FastestTime: 0
    - ResultsFastestLap:
        - FastestTime: 92.341
        - FastestTime: 0
        - FastestTime: 91.876
`

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
	return at
}

func TestReadTelemetry_FullBuffer(t *testing.T) {
	at := fixedClock(t)
	src := &fakeSource{
		initialized: true,
		connected:   true,
		values: map[string]any{
			"Speed":              54.2,
			"RPM":                6250.0,
			"Gear":               4,
			"Throttle":           0.85,
			"Brake":              0.0,
			"SteeringWheelAngle": -0.12,
			"LapCurrentLapTime":  45.6,
			"LapLastLapTime":     92.341,
			"Lap":                7,
			"SessionTime":        1830.5,
			"SessionTimeRemain":  1769.5,
			"IsOnTrack":          true,
			"LapDistPct":         0.42,
			"TrackLength":        5.0,
		},
	}

	snap, err := NewReader(src).ReadTelemetry()
	if err != nil {
		t.Fatalf("ReadTelemetry() err=%v", err)
	}

	if src.freezeCalls != 1 {
		t.Fatalf("freezeCalls=%d, want 1", src.freezeCalls)
	}
	if snap.Speed != 54.2 || snap.RPM != 6250 || snap.Gear != 4 {
		t.Fatalf("car fields: %+v", snap)
	}
	if snap.TrackLength != 5000 {
		t.Fatalf("TrackLength=%v, want 5000 (km converted to m)", snap.TrackLength)
	}
	if !snap.IsOnTrack || snap.LapNumber != 7 {
		t.Fatalf("lap fields: %+v", snap)
	}
	if !snap.CapturedAt.Equal(at) {
		t.Fatalf("CapturedAt=%v, want %v", snap.CapturedAt, at)
	}
}

func TestReadTelemetry_AbsentFieldsCoalesce(t *testing.T) {
	src := &fakeSource{initialized: true, connected: true, values: map[string]any{}}

	snap, err := NewReader(src).ReadTelemetry()
	if err != nil {
		t.Fatalf("ReadTelemetry() err=%v", err)
	}

	if snap.Speed != 0 || snap.RPM != 0 || snap.Gear != 0 || snap.TrackLength != 0 {
		t.Fatalf("numeric defaults: %+v", snap)
	}
	if snap.IsOnTrack {
		t.Fatal("IsOnTrack should default to false")
	}
}

func TestReadTelemetry_SourceFailure(t *testing.T) {
	boom := errors.New("buffer gone")
	src := &fakeSource{initialized: true, connected: true, valueErr: boom}

	_, err := NewReader(src).ReadTelemetry()
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("err=%v, want *ReadError", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want wrapped %v", err, boom)
	}
}

func TestReadTelemetry_FreezeFailure(t *testing.T) {
	src := &fakeSource{initialized: true, connected: true, freezeErr: errors.New("no map")}

	_, err := NewReader(src).ReadTelemetry()
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("err=%v, want *ReadError", err)
	}
	if src.valueCalls != 0 {
		t.Fatalf("valueCalls=%d, want 0 after failed freeze", src.valueCalls)
	}
}

func TestReadSession_FullDocument(t *testing.T) {
	src := &fakeSource{
		initialized: true,
		connected:   true,
		sessionYAML: testSessionYAML,
		values: map[string]any{
			"TrackLength":   5.0,
			"TrackTempCrew": 31.5,
			"AirTemp":       22.0,
			"TrackWetness":  2,
		},
	}

	snap, err := NewReader(src).ReadSession()
	if err != nil {
		t.Fatalf("ReadSession() err=%v", err)
	}

	if snap.TrackName != "Road Atlanta" || snap.TrackID != 127 || snap.SessionType != "Race" {
		t.Fatalf("weekend fields: %+v", snap)
	}
	if snap.DriverName != "Test Driver" || snap.CarName != "Test Car" {
		t.Fatalf("driver fields: %+v", snap)
	}
	if snap.FastestLap != 91.876 {
		t.Fatalf("FastestLap=%v, want 91.876", snap.FastestLap)
	}
	if snap.TrackLength != 5000 {
		t.Fatalf("TrackLength=%v, want 5000", snap.TrackLength)
	}
	if snap.TrackTemperature != 31.5 || snap.AirTemperature != 22.0 {
		t.Fatalf("temperature fields: %+v", snap)
	}
	if snap.TrackCondition != "dry" {
		t.Fatalf("TrackCondition=%q, want dry for wetness 2", snap.TrackCondition)
	}
	if src.freezeCalls != 1 {
		t.Fatalf("freezeCalls=%d, want 1", src.freezeCalls)
	}
}

func TestReadSession_WetTrack(t *testing.T) {
	src := &fakeSource{
		initialized: true,
		connected:   true,
		sessionYAML: testSessionYAML,
		values:      map[string]any{"TrackWetness": 3},
	}

	snap, err := NewReader(src).ReadSession()
	if err != nil {
		t.Fatalf("ReadSession() err=%v", err)
	}
	if snap.TrackCondition != "wet" {
		t.Fatalf("TrackCondition=%q, want wet for wetness 3", snap.TrackCondition)
	}
}

func TestReadSession_AbsentWetnessIsDry(t *testing.T) {
	src := &fakeSource{
		initialized: true,
		connected:   true,
		sessionYAML: testSessionYAML,
		values:      map[string]any{},
	}

	snap, err := NewReader(src).ReadSession()
	if err != nil {
		t.Fatalf("ReadSession() err=%v", err)
	}
	if snap.TrackCondition != "dry" {
		t.Fatalf("TrackCondition=%q, want dry when wetness absent", snap.TrackCondition)
	}
}

func TestReadSession_Unavailable(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty document", ""},
		{"whitespace only", "\n  \n"},
		{"weekend only", "WeekendInfo:\n  TrackID: 1\n"},
		{"drivers only", "DriverInfo:\n  DriverCarIdx: 0\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := &fakeSource{initialized: true, connected: true, sessionYAML: c.yaml}
			_, err := NewReader(src).ReadSession()
			if !errors.Is(err, ErrSessionUnavailable) {
				t.Fatalf("err=%v, want ErrSessionUnavailable", err)
			}
		})
	}
}

func TestReadSession_MalformedDocumentIsReadError(t *testing.T) {
	src := &fakeSource{initialized: true, connected: true, sessionYAML: "WeekendInfo: [broken"}

	_, err := NewReader(src).ReadSession()
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("err=%v, want *ReadError", err)
	}
	if errors.Is(err, ErrSessionUnavailable) {
		t.Fatal("malformed document must not classify as unavailable")
	}
}

func TestReadSession_UnknownDriverDefaults(t *testing.T) {
	doc := `
WeekendInfo:
  TrackDisplayName: Road Atlanta
DriverInfo:
  DriverCarIdx: 9
  Drivers:
    - CarIdx: 0
      UserName: Somebody
`
	src := &fakeSource{initialized: true, connected: true, sessionYAML: doc}

	snap, err := NewReader(src).ReadSession()
	if err != nil {
		t.Fatalf("ReadSession() err=%v", err)
	}
	if snap.DriverName != "Unknown" || snap.CarName != "Unknown" {
		t.Fatalf("driver fields: %+v, want Unknown/Unknown", snap)
	}
	if snap.SessionType != "Unknown" {
		t.Fatalf("SessionType=%q, want Unknown when absent", snap.SessionType)
	}
}
