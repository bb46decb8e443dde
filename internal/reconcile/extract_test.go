package reconcile

import (
	"reflect"
	"testing"
)

func TestExtractPairs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Pair
	}{
		{
			name: "inline label colon",
			text: "Destination: WH-07\nDate: 04-25-2024\n",
			want: []Pair{
				{Label: "Destination", Value: "WH-07"},
				{Label: "Date", Value: "04-25-2024"},
			},
		},
		{
			// Label characters include spaces, so the second label-colon
			// begins right after "W" and cuts the first value there, ahead
			// of the two-space run.
			name: "adjacent inline pairs, label terminator wins",
			text: "Dest: WH-07  Truck: TRK-998",
			want: []Pair{
				{Label: "Dest", Value: "W"},
				{Label: "H-07  Truck", Value: "TRK-998"},
			},
		},
		{
			name: "inline pairs separated by tab",
			text: "Dest: WH-07\tTruck: TRK-998",
			want: []Pair{
				{Label: "Dest", Value: "WH-07"},
				{Label: "Truck", Value: "TRK-998"},
			},
		},
		{
			name: "two tab fields",
			text: "Carrier\tMurphy Logistics",
			want: []Pair{
				{Label: "Carrier", Value: "Murphy Logistics"},
			},
		},
		{
			name: "two space-run fields",
			text: "Seal Number   00042187",
			want: []Pair{
				{Label: "Seal Number", Value: "00042187"},
			},
		},
		{
			name: "header row zipped with value row",
			text: "Order\tTruck\tDock\n100045\tTRK-551\tD-14\n",
			want: []Pair{
				{Label: "Order", Value: "100045"},
				{Label: "Truck", Value: "TRK-551"},
				{Label: "Dock", Value: "D-14"},
			},
		},
		{
			name: "even value-ish row pairs positionally",
			text: "Pallets\t6\tCases\t144",
			want: []Pair{
				{Label: "Pallets", Value: "6"},
				{Label: "Cases", Value: "144"},
			},
		},
		{
			name: "colon cells split independently",
			text: "Bay: 4\tLane: 12",
			want: []Pair{
				{Label: "Bay", Value: "4"},
				{Label: "Lane", Value: "12"},
			},
		},
		{
			name: "separator lines skipped",
			text: "----------------\nDock: D-14\n                \n",
			want: []Pair{
				{Label: "Dock", Value: "D-14"},
			},
		},
		{
			name: "duplicates collapse to first seen",
			text: "Dock: D-14\nDock: D-14\n",
			want: []Pair{
				{Label: "Dock", Value: "D-14"},
			},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPairs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPairs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPairsHeaderNeedsValueishRow(t *testing.T) {
	// Next row has the right arity but no digits, so no zip happens and
	// neither line pairs up.
	text := "Alpha\tBeta\tGamma\nOne\tTwo\tThree\n"
	got := ExtractPairs(text)
	if len(got) != 0 {
		t.Errorf("expected no pairs, got %v", got)
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"a\tb\t\tc", []string{"a", "b", "c"}},
		{"a  b   c", []string{"a", "b", "c"}},
		{"single field", []string{"single field"}},
		{"a\tb  c", []string{"a", "b  c"}}, // tabs win when present
	}

	for _, tt := range tests {
		if got := splitFields(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitFields(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestLooksValueish(t *testing.T) {
	if looksValueish([]string{"Order", "Truck"}) {
		t.Error("header tokens should not look value-ish")
	}
	if !looksValueish([]string{"TRK-551"}) {
		t.Error("digit-bearing token should look value-ish")
	}
	if !looksValueish([]string{"10:30"}) {
		t.Error("time token should look value-ish")
	}
}
