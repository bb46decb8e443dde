package reconcile

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		value string
		want  ValueClass
	}{
		{"", ClassEmpty},
		{"   \t", ClassEmpty},
		{"10:15 AM", ClassTime},
		{"2:30", ClassTime},
		{"14:30:00", ClassTime},
		{"04/25/2024", ClassDate},
		{"2024-04-25", ClassDate},
		{"3-4-24", ClassDate},
		{"TRK-1234", ClassTruck},
		{"truck 42", ClassTruck},
		{"WH-07", ClassWH},
		{"wh3", ClassWH},
		{"A123", ClassRack},
		{"A12B34C5", ClassAlnumLong},
		{"PLT-00042-XY", ClassAlnumLong},
		{"AB12C", ClassCodeShort},
		{"7", ClassSmallInt},
		{"1234", ClassSmallInt},
		{"12345", ClassCodeShort},
		{"Plant A", ClassString},
		{"Murphy Logistics", ClassString},
	}

	for _, tt := range tests {
		if got := Classify(tt.value); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

// Cascade order: "10:30" carries digits but must read as a time, and a
// warehouse code must win over the generic rack shape.
func TestClassifyOrder(t *testing.T) {
	if got := Classify("10:30"); got != ClassTime {
		t.Errorf("Classify(10:30) = %q, want time", got)
	}
	if got := Classify("WH-1"); got != ClassWH {
		t.Errorf("Classify(WH-1) = %q, want wh", got)
	}
	if got := Classify("B42"); got != ClassRack {
		t.Errorf("Classify(B42) = %q, want rack", got)
	}
}
