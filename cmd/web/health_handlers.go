package main

import (
	"encoding/json"
	"net/http"
)

// HealthHandler answers liveness probes. It fails only when a critical component is down.
func (a *app) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if !a.checker.Summary(r.Context()).Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unhealthy"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

// StatusHandler reports per-component status as JSON.
func (a *app) StatusHandler(w http.ResponseWriter, r *http.Request) {
	summary := a.checker.Summary(r.Context())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if !summary.Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(summary)
}
