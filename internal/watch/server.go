package watch

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/smart24/kotlin-native/internal/journal"
	"github.com/smart24/kotlin-native/internal/metrics"
	"github.com/smart24/kotlin-native/internal/version"
)

// HealthStatus represents the overall health of the daemon
type HealthStatus string

const (
	HealthStatusHealthy  HealthStatus = "healthy"
	HealthStatusStarting HealthStatus = "starting"
	HealthStatusDegraded HealthStatus = "degraded"
)

// HealthResponse represents the complete health check response
type HealthResponse struct {
	Status    HealthStatus `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Version   string       `json:"version"`
	Last      *Resolution  `json:"last_resolution,omitempty"`
}

// Server is the daemon's loopback HTTP endpoint: /healthz and /metrics.
type Server struct {
	daemon     *Daemon
	httpServer *http.Server
}

// NewServer creates the endpoint bound to the configured listen address.
func NewServer(listen string, daemon *Daemon) *Server {
	s := &Server{daemon: daemon}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", metrics.HTTPHandler(daemon.registry))

	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving. Listen errors after startup are logged; the daemon
// keeps resolving even if the operational endpoint dies.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleHealthz reports daemon state plus the last resolution outcome.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := s.daemon.Health()

	w.Header().Set("Content-Type", "application/json")
	if resp.Status == HealthStatusDegraded {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode health response", "error", err)
	}
}

// Health assembles the current health view of the daemon.
func (d *Daemon) Health() HealthResponse {
	resp := HealthResponse{
		Status:    HealthStatusHealthy,
		Timestamp: time.Now(),
		Uptime:    d.Uptime().String(),
		Version:   version.Version,
		Last:      d.LastResolution(),
	}

	switch {
	case resp.Last == nil:
		resp.Status = HealthStatusStarting
	case resp.Last.Outcome != journal.OutcomeOK:
		// The build environment is currently invalid; the exported snapshot
		// is stale until someone fixes it.
		resp.Status = HealthStatusDegraded
	}
	return resp
}
