package barcode

import (
	"reflect"
	"testing"
)

func TestParseResults(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []Result
	}{
		{
			name: "array",
			data: `[{"text": "Destination: WH-07", "format": "qrcode"}, {"text": "TRK-998", "format": "code128", "is_gs1": true}]`,
			want: []Result{
				{Text: "Destination: WH-07", Format: "qrcode"},
				{Text: "TRK-998", Format: "code128", IsGS1: true},
			},
		},
		{
			name: "single object",
			data: `{"text": "TRK-998", "format": "code128", "symbology_identifier": "]C1"}`,
			want: []Result{{Text: "TRK-998", Format: "code128", SymbologyIdentifier: "]C1"}},
		},
		{
			name: "empty document",
			data: "  \n",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResults([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseResults() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseResults() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseResultsInvalid(t *testing.T) {
	if _, err := ParseResults([]byte(`{"text": `)); err == nil {
		t.Error("expected error for truncated JSON")
	}
	if _, err := ParseResults([]byte(`"just a string"`)); err == nil {
		t.Error("expected error for non-result document")
	}
}

func TestJoinText(t *testing.T) {
	results := []Result{
		{Text: "Destination: WH-07", Format: "qrcode"},
		{Text: "   ", Format: "code39"},
		{Text: "TRK-998", Format: "code128"},
	}

	if got, want := JoinText(results), "Destination: WH-07\nTRK-998"; got != want {
		t.Errorf("JoinText() = %q, want %q", got, want)
	}
	if got := JoinText(nil); got != "" {
		t.Errorf("JoinText(nil) = %q, want empty", got)
	}
}
