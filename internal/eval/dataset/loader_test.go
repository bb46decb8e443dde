package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dockrecv/reconciler/internal/reconcile"
)

func TestNewLoader(t *testing.T) {
	path := "./test.parquet"
	loader := NewLoader(path)

	if loader.datasetPath != path {
		t.Errorf("Expected path %s, got %s", path, loader.datasetPath)
	}
}

func TestCaseExpectedFields(t *testing.T) {
	c := Case{
		ID:           "case-1",
		ExpectedJSON: `{"Destination": "WH-07", "Ship Date": "04/25/2024"}`,
	}

	got, err := c.ExpectedFields()
	if err != nil {
		t.Fatalf("ExpectedFields failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(got))
	}
	if got[0].Key != "Destination" || got[1].Key != "Ship Date" {
		t.Errorf("Field order = %v, want document order", got)
	}

	c.ExpectedJSON = `not json`
	if _, err := c.ExpectedFields(); err == nil {
		t.Error("Expected error for malformed document, got nil")
	}
}

func TestCaseWantSummary(t *testing.T) {
	c := Case{WantMatched: 3, WantMismatched: 1, WantMissing: 2}

	want := reconcile.Summary{Matched: 3, Mismatched: 1, Missing: 2}
	if got := c.WantSummary(); got != want {
		t.Errorf("WantSummary() = %+v, want %+v", got, want)
	}
	if got := c.FieldCount(); got != 6 {
		t.Errorf("FieldCount() = %d, want 6", got)
	}
}

func TestLoadJSONLSample(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "test.jsonl")

	testData := `{"id":"c1","barcode_text":"Destination: WH-07","expected_json":"{\"Destination\": \"WH-07\"}","want_matched":1}
{"id":"c2","barcode_text":"","expected_json":"{\"Origin\": \"Plant A\"}","want_missing":1}
{"id":"c3","barcode_text":"TRK-998","expected_json":"{}","want_matched":0}
`
	err := os.WriteFile(jsonlPath, []byte(testData), 0644)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(jsonlPath)

	cases, err := loader.LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}

	if len(cases) != 2 {
		t.Errorf("Expected 2 cases, got %d", len(cases))
	}

	if cases[0].ID != "c1" {
		t.Errorf("Expected id c1, got %s", cases[0].ID)
	}

	if cases[0].WantMatched != 1 {
		t.Errorf("Expected want_matched 1, got %d", cases[0].WantMatched)
	}

	if cases[1].ID != "c2" {
		t.Errorf("Expected id c2, got %s", cases[1].ID)
	}
}

func TestLoadJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "test.jsonl")

	testData := `{"id":"c1","barcode_text":"WH-07","expected_json":"{}"}
{"id":"c2","barcode_text":"TRK-998","expected_json":"{}"}
`
	err := os.WriteFile(jsonlPath, []byte(testData), 0644)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(jsonlPath)

	cases, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cases) != 2 {
		t.Errorf("Expected 2 cases, got %d", len(cases))
	}
}

func TestLoadWithFilter(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "test.jsonl")

	testData := `{"id":"c1","want_missing":0,"expected_json":"{}"}
{"id":"c2","want_missing":2,"expected_json":"{}"}
`
	if err := os.WriteFile(jsonlPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(jsonlPath)

	cases, err := loader.LoadWithFilter(func(c *Case) bool { return c.WantMissing > 0 })
	if err != nil {
		t.Fatalf("LoadWithFilter failed: %v", err)
	}
	if len(cases) != 1 || cases[0].ID != "c2" {
		t.Errorf("Filtered cases = %v, want only c2", cases)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	loader := NewLoader("test.txt")

	_, err := loader.Load()
	if err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}

	_, err = loader.LoadSample(10)
	if err == nil {
		t.Error("Expected error for unsupported format in LoadSample, got nil")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	loader := NewLoader("/nonexistent/path/file.jsonl")

	_, err := loader.Load()
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	_, err = loader.LoadSample(10)
	if err == nil {
		t.Error("Expected error for non-existent file in LoadSample, got nil")
	}
}
