package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dockrecv/reconciler/internal/barcode"
	"github.com/dockrecv/reconciler/internal/fields"
	"github.com/dockrecv/reconciler/internal/reconcile"
)

func newMatchCmd() *cobra.Command {
	var format string
	var threshold float64
	var noHarvest bool
	var strictStrings bool
	var greedy bool
	var textFile string

	cmd := &cobra.Command{
		Use:   "match <barcodes.json> <expected.json>",
		Short: "Reconcile one document's expected fields against its barcodes",
		Long: `Reconcile the expected fields of one document against its decoded
barcode payload.

The first argument is a decoder results JSON file; the second is the
expected-fields JSON object produced by the OCR side. Pass --text to supply
a raw text payload instead of decoder results.`,
		Example: `  # Reconcile decoder output against expected fields
  reconciler match barcodes.json expected.json

  # Raw text payload, YAML report
  reconciler match --text payload.txt expected.json --format yaml

  # Stricter assignment, no raw-token harvest
  reconciler match barcodes.json expected.json --threshold 0.6 --no-harvest`,
		Args: func(cmd *cobra.Command, args []string) error {
			want := 2
			if textFile != "" {
				want = 1
			}
			return cobra.ExactArgs(want)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var barcodeText string
			expectedPath := args[len(args)-1]

			if textFile != "" {
				data, err := os.ReadFile(textFile)
				if err != nil {
					return fmt.Errorf("failed to read text payload: %w", err)
				}
				barcodeText = string(data)
			} else {
				results, err := barcode.LoadResults(args[0])
				if err != nil {
					return err
				}
				barcodeText = barcode.JoinText(results)
			}

			expected, err := fields.Load(expectedPath)
			if err != nil {
				return err
			}

			opts := reconcile.DefaultOptions()
			opts.AssignThreshold = threshold
			opts.HarvestRaw = !noHarvest
			opts.StrictStrings = strictStrings
			if greedy {
				opts.Solver = reconcile.GreedySolver{}
			}

			report := reconcile.Reconcile(expected, barcodeText, opts)

			return writeReport(cmd, report, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, or yaml)")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.75, "Assignment acceptance threshold")
	cmd.Flags().BoolVar(&noHarvest, "no-harvest", false, "Disable raw-token harvesting from the barcode text")
	cmd.Flags().BoolVar(&strictStrings, "strict-strings", false, "Tighten acceptance of free-text pairs")
	cmd.Flags().BoolVar(&greedy, "greedy", false, "Use the greedy assignment strategy instead of the exact solver")
	cmd.Flags().StringVar(&textFile, "text", "", "Raw barcode text file (replaces the decoder results argument)")

	return cmd
}

func writeReport(cmd *cobra.Command, report *reconcile.Report, format string) error {
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "text":
		printTextReport(out, report)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
