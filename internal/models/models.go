package models

import (
	"time"

	"github.com/dockrecv/reconciler/internal/reconcile"
)

// ReconcileRun represents one retained reconciliation request and its report
type ReconcileRun struct {
	ID            string            `json:"id"`
	Expected      []reconcile.Field `json:"expected"`
	BarcodeText   string            `json:"barcode_text"`
	Threshold     float64           `json:"threshold"`
	HarvestRaw    bool              `json:"harvest_raw"`
	StrictStrings bool              `json:"strict_strings"`
	Report        *reconcile.Report `json:"report"`
	CreatedAt     time.Time         `json:"created_at"`
}
