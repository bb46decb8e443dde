package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dockrecv/reconciler/internal/eval/metrics"
)

func executeReport(resultsPath, format string) error {
	agg, err := metrics.LoadFromJSON(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(agg)
	case "json":
		return printJSONReport(agg)
	case "csv":
		return printCSVReport(agg)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(agg *metrics.AggregateResults) error {
	agg.PrintSummary()

	fmt.Println("\nDetailed Results:")
	fmt.Println("========================================")

	for i := range agg.Results {
		result := &agg.Results[i]
		fmt.Printf("\n[%d] Case ID: %s\n", i+1, result.ID)

		if result.Error != "" {
			fmt.Printf("  ❌ Error: %s\n", result.Error)
			continue
		}

		fmt.Printf("  Match Rate: %.2f%%\n", result.MatchRate()*100)
		fmt.Printf("  Got:  matched=%d mismatched=%d missing=%d\n",
			result.Got.Matched, result.Got.Mismatched, result.Got.Missing)
		fmt.Printf("  Want: matched=%d mismatched=%d missing=%d\n",
			result.Want.Matched, result.Want.Mismatched, result.Want.Missing)
		fmt.Printf("  Missed by OCR: %d\n", result.MissedByOCR)
		if !result.Agreement() {
			fmt.Printf("  ⚠ Verdict counts disagree with recorded expectations\n")
		}
	}

	return nil
}

func printJSONReport(agg *metrics.AggregateResults) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(agg)
}

func printCSVReport(agg *metrics.AggregateResults) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	header := []string{"ID", "Matched", "Mismatched", "Missing", "Missed By OCR", "Match Rate", "Agreement", "Error"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range agg.Results {
		result := &agg.Results[i]

		var row []string
		if result.Error != "" {
			row = []string{result.ID, "0", "0", "0", "0", "0", "false", result.Error}
		} else {
			row = []string{
				result.ID,
				fmt.Sprintf("%d", result.Got.Matched),
				fmt.Sprintf("%d", result.Got.Mismatched),
				fmt.Sprintf("%d", result.Got.Missing),
				fmt.Sprintf("%d", result.MissedByOCR),
				fmt.Sprintf("%.4f", result.MatchRate()),
				fmt.Sprintf("%t", result.Agreement()),
				"",
			}
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}
