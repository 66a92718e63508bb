package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// Reloader re-reads a translation catalog from its source.
type Reloader interface {
	Reload(ctx context.Context) error
	Keys() []string
}

// CatalogHandler exposes catalog maintenance to administrators.
type CatalogHandler struct {
	catalog Reloader
	logger  *slog.Logger
}

func NewCatalogHandler(catalog Reloader, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Reload(r.Context()); err != nil {
		h.logger.Error("reload catalog", "err", err)
		writeError(w, http.StatusBadGateway, "catalog reload failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"keys": len(h.catalog.Keys())})
}
