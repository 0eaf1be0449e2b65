package health

import (
	"encoding/json"
	"net/http"
)

// Checker reports whether the desk's core components are wired and usable.
type Checker interface {
	CheckFleet() error
	CheckLedger() error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker Checker
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on core component probes.
func (h Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	fleetStatus := "ok"
	if err := h.Checker.CheckFleet(); err != nil {
		fleetStatus = err.Error()
	}
	ledgerStatus := "ok"
	if err := h.Checker.CheckLedger(); err != nil {
		ledgerStatus = err.Error()
	}
	status := map[string]string{
		"fleet":  fleetStatus,
		"ledger": ledgerStatus,
	}
	w.Header().Set("Content-Type", "application/json")
	if fleetStatus != "ok" || ledgerStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}
