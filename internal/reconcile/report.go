package reconcile

import (
	"sort"
	"strings"
)

// Status is the per-field verdict.
type Status string

const (
	StatusMatch    Status = "MATCH"
	StatusMismatch Status = "MISMATCH"
	StatusMissing  Status = "MISSING"
)

// Options is the engine's configuration surface.
type Options struct {
	// AssignThreshold rejects any pairing costing more; lower is pickier.
	AssignThreshold float64
	// HarvestRaw enables the raw-token regex harvest pass.
	HarvestRaw bool
	// StrictStrings tightens string-class pair acceptance.
	StrictStrings bool
	// Solver computes the assignment; nil means the exact solver.
	Solver Solver
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		AssignThreshold: 0.75,
		HarvestRaw:      true,
		StrictStrings:   false,
		Solver:          HungarianSolver{},
	}
}

func (o Options) solver() Solver {
	if o.Solver == nil {
		return HungarianSolver{}
	}
	return o.Solver
}

// Row is one expected field's verdict.
type Row struct {
	Key          string `json:"key" yaml:"key"`
	OCRValue     string `json:"ocr_value" yaml:"ocr_value"`
	BarcodeLabel string `json:"barcode_label" yaml:"barcode_label"`
	BarcodeValue string `json:"barcode_value" yaml:"barcode_value"`
	Status       Status `json:"status" yaml:"status"`
	ContextLabel string `json:"context_label" yaml:"context_label"`
}

// Summary counts verdicts across all rows.
type Summary struct {
	Matched    int `json:"matched" yaml:"matched"`
	Mismatched int `json:"mismatched" yaml:"mismatched"`
	Missing    int `json:"missing" yaml:"missing"`
}

// MissedEntry is a library fact no report row consumed: barcode data the
// OCR side failed to surface.
type MissedEntry struct {
	Class  ValueClass `json:"class" yaml:"class"`
	Labels []string   `json:"labels" yaml:"labels"`
	Value  string     `json:"value" yaml:"value"`
	Count  int        `json:"count" yaml:"count"`
}

// LibraryReport summarizes the fact library and its unconsumed remainder.
type LibraryReport struct {
	EntriesCount     int           `json:"entries_count" yaml:"entries_count"`
	MissedByOCRCount int           `json:"missed_by_ocr_count" yaml:"missed_by_ocr_count"`
	MissedByOCR      []MissedEntry `json:"missed_by_ocr" yaml:"missed_by_ocr"`
}

// Report is the structured result of one reconciliation run.
type Report struct {
	Rows        []Row         `json:"rows" yaml:"rows"`
	Summary     Summary       `json:"summary" yaml:"summary"`
	Library     LibraryReport `json:"library" yaml:"library"`
	BarcodeText string        `json:"barcode_text" yaml:"barcode_text"`
}

// Reconcile verifies the expected OCR fields against raw barcode text and
// never fails: degenerate inputs yield empty or partial reports.
func Reconcile(expected []Field, barcodeText string, opts Options) *Report {
	lib := BuildLibrary(barcodeText, opts)

	rows, summary := assignRows(expected, barcodeText, lib.Pairs, opts)

	var consumed []string
	for _, r := range rows {
		if r.BarcodeValue != "" {
			consumed = append(consumed, r.BarcodeValue)
		}
	}
	missed := missedByOCR(lib, consumed)

	return &Report{
		Rows:    rows,
		Summary: summary,
		Library: LibraryReport{
			EntriesCount:     len(lib.Entries),
			MissedByOCRCount: len(missed),
			MissedByOCR:      missed,
		},
		BarcodeText: barcodeText,
	}
}

// assignRows runs the cost model and solver, then renders one verdict row
// per expected field in input order. Unassigned fields get a token-anchored
// search of the raw text before being declared missing.
func assignRows(expected []Field, barcodeText string, pairs []Pair, opts Options) ([]Row, Summary) {
	rows := make([]Row, 0, len(expected))
	var summary Summary
	if len(expected) == 0 {
		return rows, summary
	}

	costs := BuildCostMatrix(expected, pairs)
	assigned := opts.solver().Solve(costs, opts.AssignThreshold)

	for i, f := range expected {
		if j, ok := assigned[i]; ok {
			p := pairs[j]
			status := StatusMismatch
			if EqualStrictOrFlexible(f.Value, p.Value) {
				status = StatusMatch
				summary.Matched++
			} else {
				summary.Mismatched++
			}
			rows = append(rows, Row{
				Key:          f.Key,
				OCRValue:     f.Value,
				BarcodeLabel: p.Label,
				BarcodeValue: p.Value,
				Status:       status,
				ContextLabel: p.Label,
			})
			continue
		}

		if start, end, ok := anchoredFind(f.Value, barcodeText); ok {
			ls, le := lineBounds(barcodeText, start)
			line := barcodeText[ls:le]
			inferred := inferLabelOnLine(line, start-ls)
			rows = append(rows, Row{
				Key:          f.Key,
				OCRValue:     f.Value,
				BarcodeLabel: inferred,
				BarcodeValue: barcodeText[start:end],
				Status:       StatusMismatch,
				ContextLabel: inferred,
			})
			summary.Mismatched++
			continue
		}

		rows = append(rows, Row{Key: f.Key, OCRValue: f.Value, Status: StatusMissing})
		summary.Missing++
	}
	return rows, summary
}

// lineBounds returns the [start,end) of the physical line containing idx.
func lineBounds(text string, idx int) (int, int) {
	start := strings.LastIndexByte(text[:idx], '\n') + 1
	end := strings.IndexByte(text[idx:], '\n')
	if end == -1 {
		end = len(text)
	} else {
		end += idx
	}
	return start, end
}

// inferLabelOnLine scans backward from a match offset for the nearest
// preceding label on the line: first a label-colon occurrence, then the
// preceding tab-delimited field, then the preceding double-space-delimited
// field. All three are tried in sequence regardless of the line's detected
// delimiter.
func inferLabelOnLine(line string, matchStart int) string {
	var last []int
	for _, m := range labelColonRE.FindAllStringSubmatchIndex(line, -1) {
		if m[1] <= matchStart {
			last = m
		} else {
			break
		}
	}
	if last != nil {
		return strings.TrimSpace(line[last[2]:last[3]])
	}

	toks := strings.Split(line, "\t")
	acc := 0
	for i, t := range toks {
		segEnd := acc + len(t)
		if acc <= matchStart && matchStart <= segEnd {
			if i > 0 && strings.TrimSpace(toks[i-1]) != "" {
				return strings.TrimSpace(toks[i-1])
			}
			break
		}
		acc = segEnd + 1
	}

	parts := twoSpaceRE.Split(line, -1)
	acc = 0
	for i, p := range parts {
		segEnd := acc + len(p)
		if acc <= matchStart && matchStart <= segEnd {
			if i > 0 && strings.TrimSpace(parts[i-1]) != "" {
				return strings.TrimSpace(parts[i-1])
			}
			break
		}
		acc = segEnd + 2
	}
	return ""
}

// missedByOCR lists library facts whose value equals no consumed value,
// merging labels and counting multiplicity, ordered by class priority then
// value so reports are byte-stable.
func missedByOCR(lib *Library, consumed []string) []MissedEntry {
	equalsConsumed := func(v string) bool {
		for _, c := range consumed {
			if EqualStrictOrFlexible(v, c) {
				return true
			}
		}
		return false
	}

	// Iterate entries in insertion order so label merging is deterministic.
	kept := make(map[Key]*MissedEntry)
	var order []Key
	for _, e := range lib.Entries {
		if equalsConsumed(e.Value) {
			continue
		}
		k := keyOf(e.Value, e.Class)
		m, ok := kept[k]
		if !ok {
			m = &MissedEntry{Class: e.Class, Value: e.Value}
			kept[k] = m
			order = append(order, k)
		}
		label := e.Label
		if label == "" {
			label = "(unlabeled)"
		}
		seen := false
		for _, l := range m.Labels {
			if l == label {
				seen = true
				break
			}
		}
		if !seen {
			m.Labels = append(m.Labels, label)
		}
		m.Count++
	}

	missed := make([]MissedEntry, 0, len(order))
	for _, k := range order {
		missed = append(missed, *kept[k])
	}
	sort.SliceStable(missed, func(a, b int) bool {
		pa, pb := priorityOf(missed[a].Class), priorityOf(missed[b].Class)
		if pa != pb {
			return pa < pb
		}
		return missed[a].Value < missed[b].Value
	})
	return missed
}
