package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dockrecv/reconciler/internal/models"
	"github.com/dockrecv/reconciler/internal/storage"
)

type Handler struct {
	runStore *storage.RunStore
}

func New() *Handler {
	return &Handler{
		runStore: storage.New(),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Run helpers
func (h *Handler) getRunOrError(w http.ResponseWriter, runID string) (*models.ReconcileRun, bool) {
	run, exists := h.runStore.Get(runID)
	if !exists {
		h.writeError(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	return run, true
}
