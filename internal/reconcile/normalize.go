package reconcile

import "strings"

// NormalizeWhitespace collapses whitespace runs to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// NormalizeCaseSpace is the canonical form used for value equality and
// library deduplication.
func NormalizeCaseSpace(s string) string {
	return strings.ToUpper(NormalizeWhitespace(s))
}

// NormalizeLabel lowercases and squashes every non-alphanumeric run to a
// single space. Only used for label similarity, never for values.
func NormalizeLabel(s string) string {
	return strings.TrimSpace(nonAlnumRE.ReplaceAllString(strings.ToLower(s), " "))
}
