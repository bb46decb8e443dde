package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader handles loading of reconciliation fixture datasets
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load loads cases from a dataset file (JSONL or Parquet)
func (l *Loader) Load() ([]Case, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".parquet":
		return l.loadParquet()
	case ".jsonl", ".json":
		return l.loadJSONL()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// loadJSONL loads cases from a JSONL file
func (l *Loader) loadJSONL() ([]Case, error) {
	slog.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var cases []Case
	scanner := bufio.NewScanner(file)

	// Barcode payloads can be large; widen the per-line buffer
	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var c Case
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		cases = append(cases, c)

		if lineNum%1000 == 0 {
			slog.Debug("Reading JSONL", "lines_read", lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_cases", len(cases), "total_lines", lineNum)

	return cases, nil
}

// loadParquet loads cases from a Parquet file
func (l *Loader) loadParquet() ([]Case, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[Case](pf)
	defer reader.Close()

	var cases []Case
	rows := make([]Case, 128) // Read in batches

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			cases = append(cases, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "total_cases", len(cases))

	return cases, nil
}

// LoadSample loads a limited number of cases (useful for quick runs)
func (l *Loader) LoadSample(limit int) ([]Case, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".parquet":
		return l.loadParquetSample(limit)
	case ".jsonl", ".json":
		return l.loadJSONLSample(limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

// loadJSONLSample loads a sample from JSONL
func (l *Loader) loadJSONLSample(limit int) ([]Case, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var cases []Case
	scanner := bufio.NewScanner(file)

	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() && len(cases) < limit {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var c Case
		if err := json.Unmarshal(line, &c); err != nil {
			// Skip malformed lines but continue
			fmt.Fprintf(os.Stderr, "Warning: failed to parse JSON at line %d: %v\n", lineNum, err)
			continue
		}

		cases = append(cases, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	return cases, nil
}

// loadParquetSample loads a sample from Parquet
func (l *Loader) loadParquetSample(limit int) ([]Case, error) {
	slog.Debug("Opening Parquet file for sample", "path", l.datasetPath, "sample_limit", limit)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Case](pf)
	defer reader.Close()

	var cases []Case
	rows := make([]Case, 128)

	for len(cases) < limit {
		n, err := reader.Read(rows)
		if n > 0 {
			remaining := limit - len(cases)
			if n > remaining {
				n = remaining
			}
			cases = append(cases, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet sample", "total_cases", len(cases))

	return cases, nil
}

// LoadWithFilter loads JSONL cases matching a filter function
func (l *Loader) LoadWithFilter(filterFn func(*Case) bool) ([]Case, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var cases []Case
	scanner := bufio.NewScanner(file)

	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var c Case
		if err := json.Unmarshal(line, &c); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse JSON at line %d: %v\n", lineNum, err)
			continue
		}

		if filterFn(&c) {
			cases = append(cases, c)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	return cases, nil
}
