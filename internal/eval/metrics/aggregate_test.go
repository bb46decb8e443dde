package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dockrecv/reconciler/internal/reconcile"
)

func sampleResults() []CaseResult {
	return []CaseResult{
		{
			ID:             "c1",
			Got:            reconcile.Summary{Matched: 3, Mismatched: 1, Missing: 0},
			Want:           reconcile.Summary{Matched: 3, Mismatched: 1, Missing: 0},
			MissedByOCR:    2,
			ProcessingTime: 5 * time.Millisecond,
		},
		{
			ID:             "c2",
			Got:            reconcile.Summary{Matched: 1, Mismatched: 0, Missing: 1},
			Want:           reconcile.Summary{Matched: 2, Mismatched: 0, Missing: 0},
			ProcessingTime: 3 * time.Millisecond,
		},
		{
			ID:             "c3",
			Error:          "expected fields do not match schema",
			ProcessingTime: 1 * time.Millisecond,
		},
	}
}

func TestAggregateCaseResults(t *testing.T) {
	agg := AggregateCaseResults(sampleResults(), 0.75)

	if agg.TotalCases != 3 {
		t.Errorf("Expected TotalCases=3, got %d", agg.TotalCases)
	}
	if agg.SuccessCount != 2 {
		t.Errorf("Expected SuccessCount=2, got %d", agg.SuccessCount)
	}
	if agg.FailureCount != 1 {
		t.Errorf("Expected FailureCount=1, got %d", agg.FailureCount)
	}
	if agg.AgreementCount != 1 {
		t.Errorf("Expected AgreementCount=1, got %d", agg.AgreementCount)
	}
	if agg.AgreementRate != 0.5 {
		t.Errorf("Expected AgreementRate=0.5, got %f", agg.AgreementRate)
	}
	if agg.TotalFields != 6 {
		t.Errorf("Expected TotalFields=6, got %d", agg.TotalFields)
	}
	if agg.TotalMatched != 4 {
		t.Errorf("Expected TotalMatched=4, got %d", agg.TotalMatched)
	}
	// (3/4 + 1/2) / 2 = 0.625
	if agg.AverageMatchRate != 0.625 {
		t.Errorf("Expected AverageMatchRate=0.625, got %f", agg.AverageMatchRate)
	}
	if agg.Threshold != 0.75 {
		t.Errorf("Expected Threshold=0.75, got %f", agg.Threshold)
	}
	if agg.AverageProcessingTime != 4*time.Millisecond {
		t.Errorf("Expected AverageProcessingTime=4ms, got %s", agg.AverageProcessingTime)
	}
	if agg.TotalProcessingTime != 9*time.Millisecond {
		t.Errorf("Expected TotalProcessingTime=9ms, got %s", agg.TotalProcessingTime)
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := AggregateCaseResults(nil, 0.75)

	if agg.TotalCases != 0 || agg.SuccessCount != 0 {
		t.Errorf("Expected empty aggregate, got %+v", agg)
	}
	if agg.AgreementRate != 0.0 || agg.AverageMatchRate != 0.0 {
		t.Errorf("Expected zero rates, got %f / %f", agg.AgreementRate, agg.AverageMatchRate)
	}
}

func TestCaseResultAgreement(t *testing.T) {
	r := CaseResult{
		Got:  reconcile.Summary{Matched: 1},
		Want: reconcile.Summary{Matched: 1},
	}
	if !r.Agreement() {
		t.Error("Expected agreement for identical summaries")
	}

	r.Error = "boom"
	if r.Agreement() {
		t.Error("Expected no agreement for errored case")
	}

	r.Error = ""
	r.Want.Missing = 1
	if r.Agreement() {
		t.Error("Expected no agreement for different summaries")
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	agg := AggregateCaseResults(sampleResults(), 0.75)

	tmpDir := t.TempDir()
	jsonPath := filepath.Join(tmpDir, "results.json")

	if err := agg.SaveToJSON(jsonPath); err != nil {
		t.Fatalf("SaveToJSON failed: %v", err)
	}

	loaded, err := LoadFromJSON(jsonPath)
	if err != nil {
		t.Fatalf("LoadFromJSON failed: %v", err)
	}
	if loaded.TotalCases != agg.TotalCases || loaded.AgreementCount != agg.AgreementCount {
		t.Errorf("Loaded aggregate %+v differs from saved %+v", loaded, agg)
	}
	if len(loaded.Results) != len(agg.Results) {
		t.Errorf("Expected %d results, got %d", len(agg.Results), len(loaded.Results))
	}
}

func TestSaveDetailedReport(t *testing.T) {
	agg := AggregateCaseResults(sampleResults(), 0.75)

	tmpDir := t.TempDir()
	reportPath := filepath.Join(tmpDir, "report.txt")

	if err := agg.SaveDetailedReport(reportPath); err != nil {
		t.Fatalf("SaveDetailedReport failed: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	content := string(data)
	for _, want := range []string{"CASE 1: c1", "Verdict: AGREE", "CASE 2: c2", "Verdict: DISAGREE", "ERROR: expected fields do not match schema"} {
		if !strings.Contains(content, want) {
			t.Errorf("Report missing %q", want)
		}
	}
}
