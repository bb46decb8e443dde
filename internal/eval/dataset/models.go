package dataset

import (
	"github.com/dockrecv/reconciler/internal/fields"
	"github.com/dockrecv/reconciler/internal/reconcile"
)

// Case is one labeled reconciliation fixture: a barcode payload, the JSON
// document of expected fields, and the verdict counts a correct run produces.
type Case struct {
	// Primary key
	ID string `json:"id" parquet:"id"`

	// Inputs
	BarcodeText  string `json:"barcode_text" parquet:"barcode_text"`
	ExpectedJSON string `json:"expected_json" parquet:"expected_json"`

	// Recorded verdict counts
	WantMatched    int `json:"want_matched" parquet:"want_matched"`
	WantMismatched int `json:"want_mismatched" parquet:"want_mismatched"`
	WantMissing    int `json:"want_missing" parquet:"want_missing"`
}

// ExpectedFields parses the case's expected-field document in key order.
func (c *Case) ExpectedFields() ([]reconcile.Field, error) {
	return fields.Parse([]byte(c.ExpectedJSON))
}

// WantSummary returns the recorded counts as an engine summary.
func (c *Case) WantSummary() reconcile.Summary {
	return reconcile.Summary{
		Matched:    c.WantMatched,
		Mismatched: c.WantMismatched,
		Missing:    c.WantMissing,
	}
}

// FieldCount is the total number of expected-field verdicts the case records.
func (c *Case) FieldCount() int {
	return c.WantMatched + c.WantMismatched + c.WantMissing
}
