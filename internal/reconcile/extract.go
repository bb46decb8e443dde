package reconcile

import "strings"

// Pair is a label/value candidate recovered from barcode text. Label may be
// empty for facts harvested straight from raw text.
type Pair struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// splitFields splits a line into cells on tab runs when tabs are present,
// otherwise on runs of two or more spaces.
func splitFields(line string) []string {
	var parts []string
	if strings.Contains(line, "\t") {
		parts = tabRunRE.Split(line, -1)
	} else {
		parts = twoSpaceRE.Split(line, -1)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

// looksValueish reports whether any token carries a digit, date or time.
func looksValueish(tokens []string) bool {
	for _, t := range tokens {
		if timeRE.MatchString(t) || dateRE.MatchString(t) || digitRE.MatchString(t) {
			return true
		}
	}
	return false
}

func isColonCell(s string) bool {
	return cellColonRE.MatchString(s)
}

// inlinePairs extracts every "label: value" occurrence on a line. A value
// runs until the next run of two or more spaces, a tab, end of line, or the
// start of the next label-colon occurrence, whichever begins first. Each
// terminator is located over the untruncated remainder of the line and the
// earliest one wins: label characters include spaces, so a next label-colon
// can begin inside the value and span a two-space run, in which case it cuts
// the value short of that run.
func inlinePairs(line string) []Pair {
	var pairs []Pair
	pos := 0
	for pos < len(line) {
		m := labelColonRE.FindStringSubmatchIndex(line[pos:])
		if m == nil {
			break
		}
		label := strings.TrimSpace(line[pos+m[2] : pos+m[3]])
		valStart := pos + m[1]
		valEnd := len(line)
		if t := twoSpaceRE.FindStringIndex(line[valStart:]); t != nil && valStart+t[0] < valEnd {
			valEnd = valStart + t[0]
		}
		if t := strings.IndexByte(line[valStart:], '\t'); t >= 0 && valStart+t < valEnd {
			valEnd = valStart + t
		}
		if valStart+1 < len(line) {
			if n := labelColonRE.FindStringIndex(line[valStart+1:]); n != nil && valStart+1+n[0] < valEnd {
				valEnd = valStart + 1 + n[0]
			}
		}
		value := strings.TrimSpace(line[valStart:valEnd])
		if value != "" {
			pairs = append(pairs, Pair{Label: label, Value: value})
		}
		if valEnd <= pos {
			break
		}
		pos = valEnd
	}
	return pairs
}

// tableStrategy examines the split cells of line i and, when it applies,
// returns the pairs it produced plus the index of the next line to visit.
type tableStrategy func(toks []string, lines []string, i int) (pairs []Pair, next int, ok bool)

// twoFieldStrategy pairs a two-cell row as (label, value). Rows whose cells
// are both self-contained colon cells were already captured inline.
func twoFieldStrategy(toks []string, _ []string, i int) ([]Pair, int, bool) {
	if len(toks) != 2 {
		return nil, 0, false
	}
	if isColonCell(toks[0]) && isColonCell(toks[1]) {
		return nil, i + 1, true
	}
	return []Pair{{Label: toks[0], Value: toks[1]}}, i + 1, true
}

// headerRowStrategy zips a header row against the next non-blank line when
// that line splits into the same cell count and looks value-ish while the
// header does not.
func headerRowStrategy(toks []string, lines []string, i int) ([]Pair, int, bool) {
	if len(toks) <= 2 {
		return nil, 0, false
	}
	j := i + 1
	for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
		j++
	}
	if j >= len(lines) {
		return nil, 0, false
	}
	nxt := splitFields(lines[j])
	if len(nxt) != len(toks) || !looksValueish(nxt) || looksValueish(toks) {
		return nil, 0, false
	}
	pairs := make([]Pair, 0, len(toks))
	for k := range toks {
		pairs = append(pairs, Pair{Label: toks[k], Value: nxt[k]})
	}
	return pairs, j + 1, true
}

// evenRowStrategy handles a single value-ish row with an even cell count:
// all-colon-cell rows split per cell, anything else pairs positionally.
func evenRowStrategy(toks []string, _ []string, i int) ([]Pair, int, bool) {
	if len(toks) <= 2 || len(toks)%2 != 0 || !looksValueish(toks) {
		return nil, 0, false
	}
	allColon := true
	for _, t := range toks {
		if !isColonCell(t) {
			allColon = false
			break
		}
	}
	var pairs []Pair
	if allColon {
		for _, cell := range toks {
			if m := cellSplitRE.FindStringSubmatch(cell); m != nil {
				pairs = append(pairs, Pair{
					Label: strings.TrimSpace(m[1]),
					Value: strings.TrimSpace(m[2]),
				})
			}
		}
	} else {
		for k := 0; k+1 < len(toks); k += 2 {
			pairs = append(pairs, Pair{Label: toks[k], Value: toks[k+1]})
		}
	}
	return pairs, i + 1, true
}

var tableStrategies = []tableStrategy{
	twoFieldStrategy,
	headerRowStrategy,
	evenRowStrategy,
}

// ExtractPairs parses raw barcode text into an ordered, deduplicated list of
// candidate pairs. Each line first yields its inline label:value hits, then
// the table strategies are tried in order until one claims the line.
func ExtractPairs(text string) []Pair {
	var pairs []Pair
	lines := splitLines(text)

	i := 0
	for i < len(lines) {
		ln := strings.TrimSpace(lines[i])
		if ln == "" || sepLineRE.MatchString(ln) {
			i++
			continue
		}

		pairs = append(pairs, inlinePairs(ln)...)

		toks := splitFields(ln)
		advanced := false
		if len(toks) >= 2 {
			for _, strat := range tableStrategies {
				if got, next, ok := strat(toks, lines, i); ok {
					pairs = append(pairs, got...)
					i = next
					advanced = true
					break
				}
			}
		}
		if !advanced {
			i++
		}
	}

	seen := make(map[Pair]bool, len(pairs))
	var dedup []Pair
	for _, p := range pairs {
		if !seen[p] {
			seen[p] = true
			dedup = append(dedup, p)
		}
	}
	return dedup
}
