package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/rs/cors"
)

// HealthzServer answers liveness probes and reports the outcome of the
// most recent suite run.
type HealthzServer struct {
	ctx    context.Context
	server *http.Server

	lastStatus atomic.Value
}

type healthzResponse struct {
	Status  string `json:"status"`
	LastRun string `json:"last_run,omitempty"`
}

// SetLastRunStatus records the overall status of the latest suite run for
// health responses.
func (h *HealthzServer) SetLastRunStatus(status string) {
	h.lastStatus.Store(status)
}

func (h *HealthzServer) Start(ctx context.Context, addr string) error {
	hdlr := http.NewServeMux()
	hdlr.HandleFunc("/healthz", h.Handle)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	h.server = &http.Server{
		Handler: c.Handler(hdlr),
		Addr:    addr,
	}
	h.ctx = ctx
	return h.server.ListenAndServe()
}

func (h *HealthzServer) Shutdown() error {
	return h.server.Shutdown(h.ctx)
}

func (h *HealthzServer) Handle(w http.ResponseWriter, r *http.Request) {
	log.Debug("Received health check request", "path", r.URL.Path)
	resp := healthzResponse{Status: "ok"}
	if last, ok := h.lastStatus.Load().(string); ok {
		resp.LastRun = last
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}
