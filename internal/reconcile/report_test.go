package reconcile

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestReconcileShipment(t *testing.T) {
	expected := []Field{
		{Key: "Destination", Value: "WH-07"},
		{Key: "Ship Date", Value: "04/25/2024"},
	}
	barcodeText := "Destination: WH-07\nDate: 04-25-2024\nTRK-998\n"

	rep := Reconcile(expected, barcodeText, DefaultOptions())

	if len(rep.Rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rep.Rows), rep.Rows)
	}
	if rep.Rows[0].Status != StatusMatch || rep.Rows[0].BarcodeLabel != "Destination" {
		t.Errorf("row 0 = %+v, want MATCH against Destination", rep.Rows[0])
	}
	if rep.Rows[1].Status != StatusMatch || rep.Rows[1].BarcodeValue != "04-25-2024" {
		t.Errorf("row 1 = %+v, want MATCH against 04-25-2024", rep.Rows[1])
	}
	if rep.Summary != (Summary{Matched: 2}) {
		t.Errorf("summary = %+v, want 2 matched", rep.Summary)
	}

	// The truck token never appeared in the expected fields, so it must
	// surface as barcode data the text extraction missed.
	if rep.Library.MissedByOCRCount != 1 {
		t.Fatalf("missed = %+v, want exactly the truck token", rep.Library.MissedByOCR)
	}
	m := rep.Library.MissedByOCR[0]
	if m.Value != "TRK-998" || m.Class != ClassTruck || m.Count != 1 {
		t.Errorf("missed entry = %+v, want TRK-998 truck x1", m)
	}
}

func TestReconcileAdjacentInlinePairs(t *testing.T) {
	// Two label-colon pairs joined by a two-space run: the second label
	// starts inside the first value and terminates it early, so the first
	// field sees only a fragment and the full token lands in missed-by-OCR.
	expected := []Field{{Key: "Dest", Value: "WH-07"}}
	barcodeText := "Dest: WH-07  Truck: TRK-998\n"

	rep := Reconcile(expected, barcodeText, DefaultOptions())

	if len(rep.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rep.Rows))
	}
	r := rep.Rows[0]
	if r.Status != StatusMismatch || r.BarcodeValue != "W" || r.BarcodeLabel != "Dest" {
		t.Errorf("row = %+v, want MISMATCH against fragment %q", r, "W")
	}

	found := false
	for _, m := range rep.Library.MissedByOCR {
		if m.Value == "WH-07" && m.Class == ClassWH {
			found = true
		}
	}
	if !found {
		t.Errorf("missed = %+v, want WH-07 listed", rep.Library.MissedByOCR)
	}
}

func TestReconcileEmptyBarcodeText(t *testing.T) {
	expected := []Field{{Key: "Origin", Value: "Plant A"}}

	rep := Reconcile(expected, "", DefaultOptions())

	if len(rep.Rows) != 1 || rep.Rows[0].Status != StatusMissing {
		t.Fatalf("rows = %+v, want one MISSING row", rep.Rows)
	}
	if rep.Summary != (Summary{Missing: 1}) {
		t.Errorf("summary = %+v, want 1 missing", rep.Summary)
	}
	if rep.Library.EntriesCount != 0 || rep.Library.MissedByOCRCount != 0 {
		t.Errorf("library = %+v, want empty", rep.Library)
	}
}

func TestReconcileVerbatimTokenNeverMissing(t *testing.T) {
	// The value parses into no labeled pair but is present verbatim in the
	// raw text, so the anchored fallback must downgrade MISSING to MISMATCH.
	expected := []Field{{Key: "Reference", Value: "55421-88776"}}
	barcodeText := "Shipment manifest\nREF 55421-88776\n"

	rep := Reconcile(expected, barcodeText, DefaultOptions())

	if len(rep.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rep.Rows))
	}
	r := rep.Rows[0]
	if r.Status != StatusMismatch || r.BarcodeValue != "55421-88776" {
		t.Errorf("row = %+v, want MISMATCH carrying the found token", r)
	}
	if rep.Summary.Missing != 0 {
		t.Errorf("summary = %+v, want no missing rows", rep.Summary)
	}
}

func TestReconcileFallbackLabelInference(t *testing.T) {
	expected := []Field{{Key: "Truck ID", Value: "TRK-998"}}
	barcodeText := "Outbound log\nGate 4  TRK-998  cleared\n"

	rep := Reconcile(expected, barcodeText, DefaultOptions())

	if len(rep.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rep.Rows))
	}
	r := rep.Rows[0]
	if r.Status != StatusMismatch {
		t.Fatalf("row = %+v, want MISMATCH via anchored fallback", r)
	}
	if r.BarcodeLabel != "Gate 4" || r.ContextLabel != "Gate 4" {
		t.Errorf("inferred label = %q, want the preceding field %q", r.BarcodeLabel, "Gate 4")
	}
	if rep.Library.MissedByOCRCount != 0 {
		t.Errorf("missed = %+v, want none: the token was consumed", rep.Library.MissedByOCR)
	}
}

func TestReconcileHarvestToggle(t *testing.T) {
	opts := DefaultOptions()
	withHarvest := Reconcile(nil, "TRK-998\n", opts)
	if withHarvest.Library.EntriesCount != 1 || withHarvest.Library.MissedByOCRCount != 1 {
		t.Errorf("harvest on: library = %+v, want one truck fact", withHarvest.Library)
	}

	opts.HarvestRaw = false
	without := Reconcile(nil, "TRK-998\n", opts)
	if without.Library.EntriesCount != 0 || without.Library.MissedByOCRCount != 0 {
		t.Errorf("harvest off: library = %+v, want empty", without.Library)
	}
}

func TestReconcileGreedyParity(t *testing.T) {
	expected := []Field{
		{Key: "Destination", Value: "WH-07"},
		{Key: "Ship Date", Value: "04/25/2024"},
	}
	barcodeText := "Destination: WH-07\nDate: 04-25-2024\n"

	exact := Reconcile(expected, barcodeText, DefaultOptions())

	opts := DefaultOptions()
	opts.Solver = GreedySolver{}
	greedy := Reconcile(expected, barcodeText, opts)

	ej, _ := json.Marshal(exact)
	gj, _ := json.Marshal(greedy)
	if !bytes.Equal(ej, gj) {
		t.Errorf("solver disagreement:\nexact:  %s\ngreedy: %s", ej, gj)
	}
}

func TestReconcileDeterministic(t *testing.T) {
	expected := []Field{
		{Key: "Destination", Value: "WH-07"},
		{Key: "Ship Date", Value: "04/25/2024"},
		{Key: "Carrier", Value: "Acme Freight"},
	}
	barcodeText := "Destination: WH-07\nDate: 04-25-2024\nTRK-998\nDock D14  10:30 AM\n"

	first, _ := json.Marshal(Reconcile(expected, barcodeText, DefaultOptions()))
	for i := 0; i < 5; i++ {
		again, _ := json.Marshal(Reconcile(expected, barcodeText, DefaultOptions()))
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d diverged:\nfirst: %s\nagain: %s", i, first, again)
		}
	}
}
