package reconcile

import "github.com/agext/levenshtein"

// Field is one key/value fact the upstream extractor claims exists on the
// document.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// CeilingCost fills matrix cells that should never be chosen; it is above
// any sane assignment threshold.
const CeilingCost = 1.5

var levParams = levenshtein.NewParams()

// LabelSimilarity scores two labels in [0,1]: exact after normalization is
// 1, otherwise a normalized edit-similarity ratio.
func LabelSimilarity(expectedKey, label string) float64 {
	nk := NormalizeLabel(expectedKey)
	nl := NormalizeLabel(label)
	if nk == "" || nl == "" {
		return 0
	}
	if nk == nl {
		return 1
	}
	return levenshtein.Similarity(nk, nl, levParams)
}

// PairCost blends label similarity, value equivalence and class agreement
// into a single assignment cost, roughly in [0,1].
func PairCost(expectedKey, expectedValue string, p Pair) float64 {
	labelCost := 1 - LabelSimilarity(expectedKey, p.Label)

	valueCost := 1.0
	switch {
	case EqualStrictOrFlexible(expectedValue, p.Value):
		valueCost = 0
	case TokenPresent(expectedValue, p.Value):
		valueCost = 0.75
	}

	sameClass := Classify(expectedValue) == Classify(p.Value)
	sameTime := fullTimeRE.MatchString(expectedValue) && fullTimeRE.MatchString(p.Value)
	sameDate := dateRE.MatchString(expectedValue) && dateRE.MatchString(p.Value)
	classPenalty := 0.25
	if sameClass || sameTime || sameDate {
		classPenalty = 0
	}

	return 0.6*labelCost + 0.35*valueCost + 0.05*classPenalty
}

// BuildCostMatrix computes the full M x N cost matrix between expected
// fields and candidate pairs.
func BuildCostMatrix(expected []Field, pairs []Pair) [][]float64 {
	matrix := make([][]float64, len(expected))
	for i, f := range expected {
		row := make([]float64, len(pairs))
		for j, p := range pairs {
			row[j] = PairCost(f.Key, f.Value, p)
		}
		matrix[i] = row
	}
	return matrix
}
