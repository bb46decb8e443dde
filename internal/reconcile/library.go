package reconcile

import "strings"

// Entry is a candidate pair enriched with its value class.
type Entry struct {
	Label string
	Value string
	Class ValueClass
}

// Key identifies a logical fact: two entries with the same normalized value
// and class are the same fact.
type Key struct {
	Value string
	Class ValueClass
}

// Library holds every kept candidate fact from one barcode payload.
type Library struct {
	Entries []Entry
	ByKey   map[Key][]Entry
	Pairs   []Pair // extraction output, in candidate order, for assignment
}

func keyOf(value string, class ValueClass) Key {
	return Key{Value: NormalizeCaseSpace(value), Class: class}
}

// structuredClasses are always worth keeping regardless of label shape.
var structuredClasses = map[ValueClass]bool{
	ClassTime:      true,
	ClassDate:      true,
	ClassTruck:     true,
	ClassWH:        true,
	ClassRack:      true,
	ClassAlnumLong: true,
	ClassCodeShort: true,
}

// keepPair decides whether an extracted pair is a structural fact. Small
// integers need a lettered label (filters page numbers and bare counters);
// string-class values need a label-shaped label, and unless strict is set a
// relaxed recall branch admits longer human-readable values too.
func keepPair(label, value string, class ValueClass, strict bool) bool {
	if structuredClasses[class] {
		return true
	}
	if class == ClassSmallInt {
		return letterRE.MatchString(label)
	}
	if !labelShapeRE.MatchString(label) {
		return false
	}
	if !labelShapeRE.MatchString(value) {
		return true
	}
	if strict {
		return false
	}
	return len(value) >= 4 && (strings.Contains(value, " ") || upperWordRE.MatchString(value))
}

// rawHarvesters recover structured tokens the pair heuristics missed,
// scanned over the raw text in a fixed order.
var rawHarvesters = []struct {
	label string
	class ValueClass
	find  func(string) []string
}{
	{"", ClassAlnumLong, alnumLongTokens},
	{"Truck", ClassTruck, func(s string) []string { return truckRE.FindAllString(s, -1) }},
	{"WH", ClassWH, func(s string) []string { return whRE.FindAllString(s, -1) }},
	{"Time", ClassTime, func(s string) []string { return timeRE.FindAllString(s, -1) }},
	{"Date", ClassDate, func(s string) []string { return dateRE.FindAllString(s, -1) }},
}

// BuildLibrary extracts pairs from text and filters them into the
// deduplicated fact multimap, optionally harvesting raw structured tokens
// not captured by pair parsing.
func BuildLibrary(text string, opts Options) *Library {
	pairs := ExtractPairs(text)

	var entries []Entry
	present := make(map[Key]bool)

	for _, p := range pairs {
		label := strings.TrimSpace(p.Label)
		value := strings.TrimSpace(p.Value)
		if value == "" {
			continue
		}
		class := Classify(value)
		if !keepPair(label, value, class, opts.StrictStrings) {
			continue
		}
		entries = append(entries, Entry{Label: label, Value: value, Class: class})
		present[keyOf(value, class)] = true
	}

	if opts.HarvestRaw {
		for _, h := range rawHarvesters {
			for _, v := range h.find(text) {
				k := keyOf(v, h.class)
				if present[k] {
					continue
				}
				entries = append(entries, Entry{Label: h.label, Value: v, Class: h.class})
				present[k] = true
			}
		}
	}

	byKey := make(map[Key][]Entry, len(entries))
	for _, e := range entries {
		k := keyOf(e.Value, e.Class)
		byKey[k] = append(byKey[k], e)
	}

	return &Library{Entries: entries, ByKey: byKey, Pairs: pairs}
}
