// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/tamzrod/iracing-bridge/internal/bridge"
)

// DefaultAddress binds to loopback only: the bridge is meant for
// same-machine clients.
const DefaultAddress = "127.0.0.1:5555"

// ServerOptions configures the HTTP server.
// Timeouts are conservative defaults suitable for a local bridge server.
type ServerOptions struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Logger            *slog.Logger
}

// Server hosts the HTTP API over the bridge service.
type Server struct {
	http   *http.Server
	svc    *bridge.Service
	logger *slog.Logger
	opts   ServerOptions
}

// NewServer constructs an API server bound to the provided service.
// The server does not start listening until Start is called.
func NewServer(svc *bridge.Service, opts ServerOptions) *Server {
	if svc == nil {
		panic("api.NewServer: service is nil")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	mux := http.NewServeMux()
	s := &Server{
		svc:    svc,
		logger: opts.Logger,
		opts:   opts,
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           withMiddleware(mux, opts.Logger),
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(opts.Logger.Handler(), slog.LevelError),
			BaseContext: func(l net.Listener) context.Context {
				return context.Background()
			},
		},
	}

	// Routes
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/telemetry", s.handleTelemetry)
	mux.HandleFunc("/session", s.handleSession)
	mux.HandleFunc("/disconnect", s.handleDisconnect)

	return s
}

// Handler exposes the full middleware-wrapped handler; used by tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start begins serving HTTP in a background goroutine.
// It returns immediately; use Stop for graceful shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", "error", err)
		}
	}()
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	timeout := s.opts.ShutdownTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}

// handleRoot serves the static service descriptor. It has no dependency
// on connection state.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all; everything unrouted lands here.
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, RootResponse{
		Service: ServiceName,
		Version: ServiceVersion,
		Status:  "running",
	})
}

// handleStatus reports the connection state. Always 200: a guard failure
// degrades the payload, never the HTTP status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, FromStatus(s.svc.Status()))
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, err := s.svc.Telemetry()
	if err != nil {
		if errors.Is(err, bridge.ErrNotConnected) {
			writeError(w, http.StatusServiceUnavailable, "not connected to simulator")
			return
		}
		writeError(w, http.StatusInternalServerError, "error reading telemetry: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, FromTelemetrySnapshot(snap))
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, err := s.svc.Session()
	if err != nil {
		switch {
		case errors.Is(err, bridge.ErrNotConnected):
			writeError(w, http.StatusServiceUnavailable, "not connected to simulator")
		case errors.Is(err, bridge.ErrSessionUnavailable):
			writeError(w, http.StatusNotFound, "session info not available")
		default:
			writeError(w, http.StatusInternalServerError, "error reading session: "+err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, FromSessionSnapshot(snap))
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.svc.Disconnect(); err != nil {
		writeError(w, http.StatusInternalServerError, "error disconnecting: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, DisconnectResponse{Status: "disconnected"})
}

// withMiddleware sets the JSON content type, fully open CORS (the
// desktop client runs on a different origin) and lightweight request
// logging.
func withMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		start := TimeNow()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIError{
		Error:     msg,
		Timestamp: unixSeconds(TimeNow()),
	})
}
