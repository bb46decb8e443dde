package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dockrecv/reconciler/internal/reconcile"
)

// printTextReport renders a report for terminal reading.
func printTextReport(w io.Writer, report *reconcile.Report) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w, "RECONCILIATION REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 70))

	for _, row := range report.Rows {
		fmt.Fprintf(w, "\n%-10s %s\n", row.Status, row.Key)
		fmt.Fprintf(w, "  OCR:     %s\n", row.OCRValue)
		switch row.Status {
		case reconcile.StatusMissing:
			fmt.Fprintf(w, "  Barcode: (not found)\n")
		default:
			if row.BarcodeLabel != "" {
				fmt.Fprintf(w, "  Barcode: %s  (label: %s)\n", row.BarcodeValue, row.BarcodeLabel)
			} else {
				fmt.Fprintf(w, "  Barcode: %s\n", row.BarcodeValue)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("-", 70))
	fmt.Fprintf(w, "Matched: %d  Mismatched: %d  Missing: %d\n",
		report.Summary.Matched, report.Summary.Mismatched, report.Summary.Missing)

	if len(report.Library.MissedByOCR) > 0 {
		fmt.Fprintf(w, "\nBarcode facts not surfaced by OCR (%d):\n", report.Library.MissedByOCRCount)
		for _, m := range report.Library.MissedByOCR {
			fmt.Fprintf(w, "  [%s] %s  (labels: %s, seen %dx)\n",
				m.Class, m.Value, strings.Join(m.Labels, ", "), m.Count)
		}
	}
}
