package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	catalog Reloader
}

func NewHealthHandler(catalog Reloader) *HealthHandler { return &HealthHandler{catalog: catalog} }

// Ping serves "ping" (liveness) and "ready" (a translation catalog is loaded).
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "ping":
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
	case "ready":
		if h.catalog == nil || len(h.catalog.Keys()) == 0 {
			writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ready"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
