package evalcmd

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dockrecv/reconciler/internal/eval/dataset"
	"github.com/dockrecv/reconciler/internal/eval/metrics"
	resultsutil "github.com/dockrecv/reconciler/internal/eval/results"
	"github.com/dockrecv/reconciler/internal/reconcile"
)

func executeRun(datasetPath, outputJSON, outputReport string, sampleSize int, threshold float64, greedy, onlyFailing bool, concurrency int) error {
	slog.Info("Starting evaluation run", "dataset", datasetPath, "threshold", threshold, "sample_size", sampleSize)

	loader := dataset.NewLoader(datasetPath)

	var cases []dataset.Case
	var err error
	switch {
	case onlyFailing:
		slog.Info("Loading cases with recorded mismatch or missing verdicts")
		cases, err = loader.LoadWithFilter(func(c *dataset.Case) bool {
			return c.WantMismatched > 0 || c.WantMissing > 0
		})
	case sampleSize > 0:
		slog.Info("Loading sample from dataset", "limit", sampleSize)
		cases, err = loader.LoadSample(sampleSize)
	default:
		slog.Info("Loading full dataset")
		cases, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	slog.Info("Dataset loaded", "cases", len(cases))

	opts := reconcile.DefaultOptions()
	opts.AssignThreshold = threshold
	if greedy {
		opts.Solver = reconcile.GreedySolver{}
	}

	// Process cases with concurrency control
	slog.Info("Processing cases", "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan metrics.CaseResult, len(cases))

	for i, c := range cases {
		wg.Add(1)
		go func(idx int, c dataset.Case) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Debug("Processing case", "id", c.ID, "progress", fmt.Sprintf("%d/%d", idx+1, len(cases)))

			resultsChan <- processCase(c, opts)
		}(i, c)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]metrics.CaseResult, 0, len(cases))
	for result := range resultsChan {
		results = append(results, result)
	}

	// Concurrent collection scrambles the order; restore it for stable output
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })

	agg := metrics.AggregateCaseResults(results, threshold)

	if outputJSON != "" {
		slog.Info("Saving results", "output", outputJSON)
		if err := agg.SaveToJSON(outputJSON); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
	}

	if outputReport != "" {
		slog.Info("Saving detailed report", "output", outputReport)
		if err := agg.SaveDetailedReport(outputReport); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
	}

	if err := resultsutil.SaveToYAML(datasetPath, threshold, len(cases), results); err != nil {
		return fmt.Errorf("failed to save YAML results: %w", err)
	}

	agg.PrintSummary()

	if outputJSON != "" {
		fmt.Printf("\nGenerate detailed report with:\n")
		fmt.Printf("  reconciler eval report --results %s\n", outputJSON)
	}

	return nil
}

func processCase(c dataset.Case, opts reconcile.Options) metrics.CaseResult {
	result := metrics.CaseResult{
		ID:   c.ID,
		Want: c.WantSummary(),
	}

	start := time.Now()
	defer func() { result.ProcessingTime = time.Since(start) }()

	expected, err := c.ExpectedFields()
	if err != nil {
		result.Error = fmt.Sprintf("invalid expected fields: %v", err)
		return result
	}

	// Recorded counts must account for every expected field.
	if n := c.FieldCount(); n != len(expected) {
		result.Error = fmt.Sprintf("recorded counts total %d but case has %d fields", n, len(expected))
		return result
	}

	report := reconcile.Reconcile(expected, c.BarcodeText, opts)
	result.Got = report.Summary
	result.MissedByOCR = report.Library.MissedByOCRCount

	return result
}
