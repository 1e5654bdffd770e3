package monitoring

import (
	"fmt"
	"log"
	"net/http"
)

// HealthServer exposes the monitor's view of the last agent run over HTTP.
// It only runs in watch mode; one-shot runs report through the exit code.
type HealthServer struct {
	monitor *Monitor
	port    string
}

func NewHealthServer(monitor *Monitor, port string) *HealthServer {
	if port == "" {
		port = "8080"
	}
	return &HealthServer{
		monitor: monitor,
		port:    port,
	}
}

// Start serves /health and /status in a background goroutine.
func (h *HealthServer) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/status", h.handleStatus)

	log.Printf("Health endpoint listening on port %s", h.port)
	go func() {
		if err := http.ListenAndServe(":"+h.port, mux); err != nil {
			log.Printf("Warning: health endpoint stopped: %v", err)
		}
	}()
}

// handleHealth answers 200 while the last run succeeded (or no run has
// happened yet) and 503 after a critical failure, for liveness probes.
func (h *HealthServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.monitor.IsHealthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "UNHEALTHY - %s", h.monitor.GetStatusSummary())
		return
	}
	fmt.Fprintf(w, "OK - %s", h.monitor.GetStatusSummary())
}

func (h *HealthServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, h.monitor.GetStatusSummary())
}
