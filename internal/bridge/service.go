// internal/bridge/service.go
package bridge

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tamzrod/iracing-bridge/internal/sdk"
)

// Service is the single owner of the source handle and the stale-read
// cache. Every operation runs guard -> read -> cache under one mutex:
// the source handle is process-wide shared state and Go serves requests
// in parallel.
type Service struct {
	mu     sync.Mutex
	src    sdk.Source
	guard  *Guard
	reader *Reader
	cache  *Cache
	logger *slog.Logger
}

// NewService wires the guard, reader and cache around a source handle.
func NewService(src sdk.Source, settle time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		src:    src,
		guard:  NewGuard(src, settle),
		reader: NewReader(src),
		cache:  NewCache(),
		logger: logger,
	}
}

// Status polls the connection state. It never returns an error: a guard
// failure degrades the payload to disconnected/uninitialized plus the
// failure message.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	connected := s.guard.EnsureConnected()
	st := Status{At: timeNow()}
	if err := s.guard.LastError(); err != nil {
		st.Err = err
		return st
	}

	st.Connected = connected
	st.Initialized = s.src.Initialized()
	return st
}

// Telemetry returns the freshest telemetry snapshot available.
// Disconnected -> ErrNotConnected without touching the variable buffer.
// A failed live read falls back to the cached snapshot when one exists;
// the read error surfaces only on a cache miss.
func (s *Service) Telemetry() (TelemetrySnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.guard.EnsureConnected() {
		return TelemetrySnapshot{}, ErrNotConnected
	}

	snap, err := s.reader.ReadTelemetry()
	if err != nil {
		if cached, ok := s.cache.Telemetry(); ok {
			s.logger.Warn("live telemetry read failed, serving cached snapshot", "error", err)
			return cached, nil
		}
		return TelemetrySnapshot{}, err
	}

	s.cache.PutTelemetry(snap)
	return snap, nil
}

// Session returns the freshest session snapshot available, with the same
// gate and fallback policy as Telemetry. ErrSessionUnavailable passes
// through unchanged on a cache miss so the handler can answer not-found.
func (s *Service) Session() (SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.guard.EnsureConnected() {
		return SessionSnapshot{}, ErrNotConnected
	}

	snap, err := s.reader.ReadSession()
	if err != nil {
		if cached, ok := s.cache.Session(); ok {
			s.logger.Warn("live session read failed, serving cached snapshot", "error", err)
			return cached, nil
		}
		return SessionSnapshot{}, err
	}

	s.cache.PutSession(snap)
	return snap, nil
}

// Disconnect shuts the source down unconditionally.
// The cache is left intact; a later request reconnects through the guard.
func (s *Service) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.src.Shutdown(); err != nil {
		return &ShutdownError{Err: err}
	}
	s.logger.Info("source disconnected")
	return nil
}
