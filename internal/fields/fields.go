// Package fields loads the expected-field list extracted from a document by
// the OCR side. The input is a flat JSON object; key order in the document is
// preserved because it drives report row order.
package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dockrecv/reconciler/internal/reconcile"
)

// expectedSchema accepts a flat object of scalar values. Nested objects and
// arrays are rejected up front so decoding can stay simple.
var expectedSchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type": []any{"string", "number", "integer", "boolean", "null"},
	},
}

func validate(data []byte) error {
	b, err := json.Marshal(expectedSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("expected.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("expected.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal expected fields: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("expected fields do not match schema: %w", err)
	}
	return nil
}

// Parse decodes a JSON object into fields in document key order. Scalar
// values are rendered as strings; null becomes the empty string.
func Parse(data []byte) ([]reconcile.Field, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read expected fields: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected fields must be a JSON object, got %v", tok)
	}

	var out []reconcile.Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read field key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v for field key", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read value for %q: %w", key, err)
		}
		out = append(out, reconcile.Field{Key: key, Value: renderScalar(valTok)})
	}

	return out, nil
}

func renderScalar(tok json.Token) string {
	switch v := tok.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Load reads and parses an expected-fields JSON file.
func Load(path string) ([]reconcile.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read expected fields file: %w", err)
	}
	return Parse(data)
}

// FromMap builds a field list from a plain map, sorted by key so callers
// without a document order still get deterministic reports.
func FromMap(m map[string]string) []reconcile.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]reconcile.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, reconcile.Field{Key: k, Value: m[k]})
	}
	return out
}
