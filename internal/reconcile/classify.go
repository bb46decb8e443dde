package reconcile

import "strings"

// ValueClass is the semantic category of a value's textual shape.
type ValueClass string

const (
	ClassEmpty     ValueClass = "empty"
	ClassTime      ValueClass = "time"
	ClassDate      ValueClass = "date"
	ClassTruck     ValueClass = "truck"
	ClassWH        ValueClass = "wh"
	ClassRack      ValueClass = "rack"
	ClassAlnumLong ValueClass = "alnum_long"
	ClassCodeShort ValueClass = "code_short"
	ClassSmallInt  ValueClass = "small_int"
	ClassString    ValueClass = "string"
)

// Classify assigns a value to its class. The cascade order is part of the
// contract: structured classes are tested before the generic alphanumeric
// fallbacks, and time/date precede anything digit-based so "10:30" never
// reads as a short code.
func Classify(v string) ValueClass {
	if strings.TrimSpace(v) == "" {
		return ClassEmpty
	}
	switch {
	case timeRE.MatchString(v):
		return ClassTime
	case dateRE.MatchString(v):
		return ClassDate
	case truckRE.MatchString(v):
		return ClassTruck
	case whRE.MatchString(v):
		return ClassWH
	case rackRE.MatchString(v):
		return ClassRack
	case hasAlnumLong(v):
		return ClassAlnumLong
	case hasCodeShort(v):
		return ClassCodeShort
	case smallIntRE.MatchString(v):
		return ClassSmallInt
	}
	return ClassString
}

// classPriority orders classes for the missed-by-OCR listing, most
// identifying first.
var classPriority = map[ValueClass]int{
	ClassAlnumLong: 0,
	ClassTruck:     1,
	ClassWH:        2,
	ClassRack:      3,
	ClassDate:      4,
	ClassTime:      5,
	ClassCodeShort: 6,
	ClassSmallInt:  7,
	ClassString:    8,
	ClassEmpty:     9,
}

func priorityOf(c ValueClass) int {
	if p, ok := classPriority[c]; ok {
		return p
	}
	return 99
}
