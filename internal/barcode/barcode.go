// Package barcode models the output of the upstream symbol decoder. Decoding
// itself happens out of process; this package only reads its JSON results and
// flattens them into the raw text payload the engine consumes.
package barcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Point is one corner of a detected symbol's bounding polygon.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Result is one decoded symbol as reported by the decoder.
type Result struct {
	Text                string  `json:"text"`
	Format              string  `json:"format"`
	Position            []Point `json:"position,omitempty"`
	SymbologyIdentifier string  `json:"symbology_identifier,omitempty"`
	IsGS1               bool    `json:"is_gs1,omitempty"`
}

// ParseResults decodes a decoder output document: a JSON array of results,
// or a single result object.
func ParseResults(data []byte) ([]Result, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		var r Result
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return nil, fmt.Errorf("failed to parse decoder result: %w", err)
		}
		return []Result{r}, nil
	}

	var results []Result
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return nil, fmt.Errorf("failed to parse decoder results: %w", err)
	}
	return results, nil
}

// LoadResults reads decoder results from a JSON file.
func LoadResults(path string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoder results file: %w", err)
	}
	return ParseResults(data)
}

// JoinText newline-joins non-empty decoded payloads in decoder order. The
// result is the barcodeText the reconciliation engine runs against.
func JoinText(results []Result) string {
	var parts []string
	for _, r := range results {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, "\n")
}
