package reconcile

import "regexp"

// Compiled once at load and treated as immutable. The cascade in Classify
// depends on these being tested in a fixed order, so keep them together.
var (
	sepLineRE  = regexp.MustCompile(`^[-\s]{8,}$`)
	timeRE     = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(AM|PM)?\b`)
	fullTimeRE = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(AM|PM)?\s*$`)

	dateSlashRE = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	dateISORE   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dateRE      = regexp.MustCompile(dateSlashRE.String() + `|` + dateISORE.String())

	truckRE = regexp.MustCompile(`(?i)\b(?:TRK|TRUCK)\s*[- ]?\d{2,6}\b`)
	whRE    = regexp.MustCompile(`(?i)\bWH-?\d{1,3}\b`)
	rackRE  = regexp.MustCompile(`(?i)\b(?:WH-?\d{1,3}|[A-Z]\d{2,3})\b`)

	smallIntRE = regexp.MustCompile(`^\d{1,4}$`)

	labelColonRE = regexp.MustCompile(`([A-Za-z][A-Za-z0-9 /#\-()]{1,32})\s*:\s*`)
	cellColonRE  = regexp.MustCompile(`^\s*[A-Za-z][A-Za-z0-9 /#\-()]{1,32}\s*:\s*\S`)
	cellSplitRE  = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9 /#\-()]{1,32})\s*:\s*(.+)$`)
	labelShapeRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 /#\-()]{1,32}$`)

	letterRE    = regexp.MustCompile(`[A-Za-z]`)
	digitRE     = regexp.MustCompile(`\d`)
	upperWordRE = regexp.MustCompile(`[A-Z][a-z]+`)

	whitespaceRE = regexp.MustCompile(`\s+`)
	nonAlnumRE   = regexp.MustCompile(`[^a-z0-9]+`)
	tabRunRE     = regexp.MustCompile(`\t+`)
	twoSpaceRE   = regexp.MustCompile(`\s{2,}`)

	alnumRunRE = regexp.MustCompile(`[A-Za-z0-9-]+`)
)

func isASCIIAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// alnumLongTokens returns maximal letter/digit/hyphen runs of length >= 8
// that carry at least one digit.
func alnumLongTokens(s string) []string {
	var out []string
	for _, loc := range alnumRunRE.FindAllString(s, -1) {
		if len(loc) >= 8 && digitRE.MatchString(loc) {
			out = append(out, loc)
		}
	}
	return out
}

func hasAlnumLong(s string) bool {
	return len(alnumLongTokens(s)) > 0
}

// hasCodeShort reports whether s contains a letter/digit/hyphen token of
// length >= 5 whose leading hyphen-free segment carries a digit.
func hasCodeShort(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isASCIIAlnum(s[i]) && s[i] != '-' {
			continue
		}
		run := 0
		for j := i; j < len(s) && (isASCIIAlnum(s[j]) || s[j] == '-'); j++ {
			run++
		}
		if run < 5 {
			i += run
			continue
		}
		digitBeforeHyphen := false
		for j := i; j < len(s) && isASCIIAlnum(s[j]); j++ {
			if isASCIIDigit(s[j]) {
				digitBeforeHyphen = true
				break
			}
		}
		if digitBeforeHyphen {
			return true
		}
	}
	return false
}
