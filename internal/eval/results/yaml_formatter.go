package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dockrecv/reconciler/internal/eval/metrics"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Threshold   float64 `yaml:"threshold"`
	DatasetPath string  `yaml:"datasetpath"`
	SampleSize  int     `yaml:"samplesize"`
	Timestamp   string  `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier  string  `yaml:"identifier"`
	Matched     int     `yaml:"matched"`
	Mismatched  int     `yaml:"mismatched"`
	Missing     int     `yaml:"missing"`
	MissedByOCR int     `yaml:"missedbyocr"`
	MatchRate   float64 `yaml:"matchrate"`
	Agreement   bool    `yaml:"agreement"`
}

// EvalSpec represents the complete evaluation record
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML saves evaluation results to a YAML file in evals/ directory
func SaveToYAML(datasetPath string, threshold float64, sampleSize int, results []metrics.CaseResult) error {
	if err := os.MkdirAll("evals", 0755); err != nil {
		return fmt.Errorf("failed to create evals directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			Threshold:   threshold,
			DatasetPath: datasetPath,
			SampleSize:  sampleSize,
			Timestamp:   timestamp,
		},
		Results: make([]EvalResult, 0, len(results)),
	}

	for i := range results {
		r := &results[i]
		if r.Error != "" {
			continue // Skip failed cases
		}

		spec.Results = append(spec.Results, EvalResult{
			Identifier:  r.ID,
			Matched:     r.Got.Matched,
			Mismatched:  r.Got.Mismatched,
			Missing:     r.Got.Missing,
			MissedByOCR: r.MissedByOCR,
			MatchRate:   r.MatchRate(),
			Agreement:   r.Agreement(),
		})
	}

	filename := fmt.Sprintf("evals/reconcile-%s.yaml", timestamp)

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("\n✅ Evaluation results saved to: %s\n", absPath)

	return nil
}
