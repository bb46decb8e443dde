package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dockrecv/reconciler/internal/reconcile"
)

// CaseResult represents the outcome of reconciling a single fixture case
type CaseResult struct {
	ID             string
	Got            reconcile.Summary
	Want           reconcile.Summary
	MissedByOCR    int
	ProcessingTime time.Duration
	Error          string // If the case could not be run
}

// Agreement reports whether the run reproduced the case's recorded counts
func (r *CaseResult) Agreement() bool {
	return r.Error == "" && r.Got == r.Want
}

// MatchRate is the fraction of expected fields that matched
func (r *CaseResult) MatchRate() float64 {
	total := r.Got.Matched + r.Got.Mismatched + r.Got.Missing
	if total == 0 {
		return 0.0
	}
	return float64(r.Got.Matched) / float64(total)
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalCases   int
	SuccessCount int
	FailureCount int

	// Verdict agreement with the recorded expectations
	AgreementCount int
	AgreementRate  float64

	// Field-level totals across all successful cases
	TotalFields      int
	TotalMatched     int
	TotalMismatched  int
	TotalMissing     int
	AverageMatchRate float64

	// Timing
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	// Detailed results
	Results []CaseResult

	// Metadata
	EvaluationDate time.Time
	Threshold      float64
	SampleSize     int
}

// AggregateCaseResults aggregates multiple case results
func AggregateCaseResults(results []CaseResult, threshold float64) *AggregateResults {
	agg := &AggregateResults{
		TotalCases:     len(results),
		Results:        results,
		EvaluationDate: time.Now(),
		Threshold:      threshold,
		SampleSize:     len(results),
	}

	totalMatchRate := 0.0
	var totalDuration time.Duration
	var successDuration time.Duration

	for i := range results {
		r := &results[i]
		totalDuration += r.ProcessingTime

		if r.Error != "" {
			agg.FailureCount++
			continue
		}

		agg.SuccessCount++
		successDuration += r.ProcessingTime

		if r.Agreement() {
			agg.AgreementCount++
		}

		agg.TotalMatched += r.Got.Matched
		agg.TotalMismatched += r.Got.Mismatched
		agg.TotalMissing += r.Got.Missing
		agg.TotalFields += r.Got.Matched + r.Got.Mismatched + r.Got.Missing

		totalMatchRate += r.MatchRate()
	}

	if agg.SuccessCount > 0 {
		agg.AgreementRate = float64(agg.AgreementCount) / float64(agg.SuccessCount)
		agg.AverageMatchRate = totalMatchRate / float64(agg.SuccessCount)
		agg.AverageProcessingTime = successDuration / time.Duration(agg.SuccessCount)
	}

	agg.TotalProcessingTime = totalDuration

	return agg
}

// PrintSummary prints a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary() {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("RECONCILER EVALUATION SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Assignment Threshold: %.2f\n", a.Threshold)
	fmt.Printf("Sample Size: %d cases\n", a.SampleSize)
	fmt.Println()

	fmt.Println("PROCESSING STATISTICS")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Total Cases: %d\n", a.TotalCases)
	if a.TotalCases > 0 {
		fmt.Printf("Successful: %d (%.1f%%)\n", a.SuccessCount, float64(a.SuccessCount)/float64(a.TotalCases)*100)
		fmt.Printf("Failed: %d (%.1f%%)\n", a.FailureCount, float64(a.FailureCount)/float64(a.TotalCases)*100)
	}
	fmt.Printf("Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Printf("Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Println()

	fmt.Println("FIELD-LEVEL TOTALS")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Fields: %d\n", a.TotalFields)
	fmt.Printf("Matched: %d\n", a.TotalMatched)
	fmt.Printf("Mismatched: %d\n", a.TotalMismatched)
	fmt.Printf("Missing: %d\n", a.TotalMissing)
	fmt.Printf("Average Match Rate: %.2f%% (%.3f)\n", a.AverageMatchRate*100, a.AverageMatchRate)
	fmt.Println()

	fmt.Println("VERDICT AGREEMENT")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Cases reproducing recorded counts: %d/%d\n", a.AgreementCount, a.SuccessCount)
	fmt.Printf("Agreement Rate: %.2f%% (%.3f)\n", a.AgreementRate*100, a.AgreementRate)
	fmt.Println(strings.Repeat("=", 70))
}

// SaveToJSON saves the aggregate results to a JSON file
func (a *AggregateResults) SaveToJSON(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(a); err != nil {
		return fmt.Errorf("failed to encode results to JSON: %w", err)
	}

	return nil
}

// LoadFromJSON reads aggregate results previously written by SaveToJSON
func LoadFromJSON(filepath string) (*AggregateResults, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var agg AggregateResults
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}

	return &agg, nil
}

// SaveDetailedReport saves a detailed report with individual results
func (a *AggregateResults) SaveDetailedReport(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "RECONCILER EVALUATION DETAILED REPORT\n")
	fmt.Fprintf(file, "Generated: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Assignment Threshold: %.2f\n", a.Threshold)
	separator := strings.Repeat("=", 80)
	fmt.Fprintf(file, "%s\n\n", separator)

	dash := strings.Repeat("-", 80)
	for i, result := range a.Results {
		fmt.Fprintf(file, "CASE %d: %s\n", i+1, result.ID)
		fmt.Fprintf(file, "%s\n", dash)
		fmt.Fprintf(file, "Processing Time: %s\n", result.ProcessingTime)

		if result.Error != "" {
			fmt.Fprintf(file, "ERROR: %s\n", result.Error)
		} else {
			fmt.Fprintf(file, "Got:  matched=%d mismatched=%d missing=%d\n",
				result.Got.Matched, result.Got.Mismatched, result.Got.Missing)
			fmt.Fprintf(file, "Want: matched=%d mismatched=%d missing=%d\n",
				result.Want.Matched, result.Want.Mismatched, result.Want.Missing)
			fmt.Fprintf(file, "Missed by OCR: %d\n", result.MissedByOCR)
			fmt.Fprintf(file, "Match Rate: %.2f%%\n", result.MatchRate()*100)
			if result.Agreement() {
				fmt.Fprintf(file, "Verdict: AGREE\n")
			} else {
				fmt.Fprintf(file, "Verdict: DISAGREE\n")
			}
		}

		fmt.Fprintf(file, "\n%s\n\n", separator)
	}

	return nil
}
