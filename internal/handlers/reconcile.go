package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dockrecv/reconciler/internal/barcode"
	"github.com/dockrecv/reconciler/internal/fields"
	"github.com/dockrecv/reconciler/internal/models"
	"github.com/dockrecv/reconciler/internal/reconcile"
)

// reconcileRequest is the POST /api/reconcile body. Expected is kept raw so
// the document's key order survives into the report; Barcodes carries decoder
// results, or BarcodeText the pre-joined payload directly.
type reconcileRequest struct {
	Barcodes      []barcode.Result `json:"barcodes"`
	BarcodeText   string           `json:"barcode_text"`
	Expected      json.RawMessage  `json:"expected"`
	Threshold     *float64         `json:"threshold"`
	HarvestRaw    *bool            `json:"harvest_raw"`
	StrictStrings *bool            `json:"strict_strings"`
}

func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		h.writeError(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	// Limit request size to 10MB
	body, err := io.ReadAll(io.LimitReader(r.Body, 10*1024*1024))
	if err != nil {
		h.writeError(w, "Failed to read request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var request reconcileRequest
	if err := json.Unmarshal(body, &request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(request.Expected) == 0 {
		h.writeError(w, "expected is required", http.StatusBadRequest)
		return
	}

	expected, err := fields.Parse(request.Expected)
	if err != nil {
		h.writeError(w, "Invalid expected fields: "+err.Error(), http.StatusBadRequest)
		return
	}

	barcodeText := request.BarcodeText
	if barcodeText == "" && len(request.Barcodes) > 0 {
		barcodeText = barcode.JoinText(request.Barcodes)
	}

	opts := reconcile.DefaultOptions()
	if request.Threshold != nil {
		opts.AssignThreshold = *request.Threshold
	}
	if request.HarvestRaw != nil {
		opts.HarvestRaw = *request.HarvestRaw
	}
	if request.StrictStrings != nil {
		opts.StrictStrings = *request.StrictStrings
	}

	report := reconcile.Reconcile(expected, barcodeText, opts)

	run := &models.ReconcileRun{
		ID:            uuid.NewString(),
		Expected:      expected,
		BarcodeText:   barcodeText,
		Threshold:     opts.AssignThreshold,
		HarvestRaw:    opts.HarvestRaw,
		StrictStrings: opts.StrictStrings,
		Report:        report,
		CreatedAt:     time.Now(),
	}
	h.runStore.Set(run.ID, run)

	slog.Info("Reconciliation run complete",
		"run_id", run.ID,
		"fields", len(expected),
		"matched", report.Summary.Matched,
		"mismatched", report.Summary.Mismatched,
		"missing", report.Summary.Missing)

	h.writeJSON(w, run)
}
