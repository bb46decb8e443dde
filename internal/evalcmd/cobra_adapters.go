package evalcmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// defaultThreshold resolves the assignment threshold from the environment,
// falling back to the engine default.
func defaultThreshold() float64 {
	if v := os.Getenv("RECONCILER_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			return t
		}
	}
	return 0.75
}

// NewRunCmd creates the run command for batch reconciliation evaluation
func NewRunCmd() *cobra.Command {
	var datasetPath string
	var outputJSON string
	var outputReport string
	var sampleSize int
	var threshold float64
	var greedy bool
	var onlyFailing bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run reconciliation over a fixture dataset",
		Long: `Run the reconciliation engine over a labeled fixture dataset and measure
how often the produced verdict counts agree with the recorded expectations.

Datasets are JSONL or Parquet files of cases, each carrying a barcode text
payload, an expected-fields JSON document, and the verdict counts a correct
run produces.`,
		Example: `  # Evaluate 10 cases
  reconciler eval run --dataset ./fixtures/cases.jsonl --sample 10

  # Evaluate a full parquet dataset with a stricter threshold
  reconciler eval run --dataset ./fixtures/cases.parquet --sample -1 --threshold 0.6

  # Compare against the greedy assignment strategy
  reconciler eval run --dataset ./fixtures/cases.jsonl --greedy

  # Revisit only the cases known to carry mismatches or missing fields
  reconciler eval run --dataset ./fixtures/cases.jsonl --only-failing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", datasetPath)
			}

			return executeRun(datasetPath, outputJSON, outputReport, sampleSize, threshold, greedy, onlyFailing, concurrency)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "./fixtures/cases.jsonl", "Path to fixture dataset (.jsonl or .parquet)")
	cmd.Flags().StringVar(&outputJSON, "output-json", "eval_results.json", "Path to output JSON results file")
	cmd.Flags().StringVar(&outputReport, "output-report", "eval_report.txt", "Path to output detailed report file")
	cmd.Flags().IntVar(&sampleSize, "sample", 10, "Number of cases to evaluate (-1 for all)")
	cmd.Flags().Float64Var(&threshold, "threshold", defaultThreshold(), "Assignment acceptance threshold")
	cmd.Flags().BoolVar(&greedy, "greedy", false, "Use the greedy assignment strategy instead of the exact solver")
	cmd.Flags().BoolVar(&onlyFailing, "only-failing", false, "Evaluate only cases whose recorded counts include a mismatch or missing verdict (JSONL datasets, ignores --sample)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of cases to process in parallel")

	return cmd
}

// NewReportCmd creates the report command for rendering saved results
func NewReportCmd() *cobra.Command {
	var resultsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved evaluation results file",
		Example: `  # Human-readable report
  reconciler eval report --results eval_results.json

  # Machine-readable output
  reconciler eval report --results eval_results.json --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(resultsPath, format)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "eval_results.json", "Path to a results file written by eval run")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, or csv)")

	return cmd
}
