package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/dockrecv/reconciler/internal/models"
)

func (h *Handler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		runs := h.runStore.GetAll()
		runList := make([]*models.ReconcileRun, 0, len(runs))
		for _, run := range runs {
			runList = append(runList, run)
		}
		// Newest first; stable ids break creation-time ties.
		sort.Slice(runList, func(i, j int) bool {
			if !runList[i].CreatedAt.Equal(runList[j].CreatedAt) {
				return runList[i].CreatedAt.After(runList[j].CreatedAt)
			}
			return runList[i].ID < runList[j].ID
		})
		h.writeJSON(w, runList)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleRunDetail(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimPrefix(r.URL.Path, "/api/runs/")

	run, ok := h.getRunOrError(w, runID)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, run)
	case "DELETE":
		h.runStore.Delete(run.ID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
