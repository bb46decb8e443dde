package reconcile

import (
	"regexp"
	"strconv"
	"strings"
)

type clockTime struct {
	hour     int // 24-hour
	minute   int
	meridian string // "AM", "PM", or ""
}

// parseFullTime parses a string that is entirely a time token,
// H:MM[:SS][ AM|PM]. Seconds are parsed but never compared.
func parseFullTime(s string) (clockTime, bool) {
	if s == "" {
		return clockTime{}, false
	}
	m := fullTimeRE.FindStringSubmatch(s)
	if m == nil {
		return clockTime{}, false
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	mer := strings.ToUpper(m[4])
	h24 := hh
	if mer == "PM" && hh != 12 {
		h24 = hh + 12
	}
	if mer == "AM" && hh == 12 {
		h24 = 0
	}
	return clockTime{hour: h24, minute: mm, meridian: mer}, true
}

// TimesEqualFlexible compares two whole-string times format-insensitively.
// When both sides carry a meridian they must agree; otherwise the 24-hour
// hour/minute pair decides, so "2:30 PM" equals "14:30:00".
func TimesEqualFlexible(a, b string) bool {
	ta, ok := parseFullTime(a)
	if !ok {
		return false
	}
	tb, ok := parseFullTime(b)
	if !ok {
		return false
	}
	if ta.meridian != "" && tb.meridian != "" && ta.meridian != tb.meridian {
		return false
	}
	return ta.hour == tb.hour && ta.minute == tb.minute
}

type calendarDate struct {
	year, month, day int
}

// parseDate finds a date token in s, trying ISO YYYY-MM-DD before the
// numeric D[/-]M[/-]Y form. When the first numeric component exceeds 12 and
// the second does not, day and month are swapped.
func parseDate(s string) (calendarDate, bool) {
	if s == "" {
		return calendarDate{}, false
	}
	if m := dateISORE.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if mo >= 1 && mo <= 12 && d >= 1 && d <= 31 {
			return calendarDate{year: y, month: mo, day: d}, true
		}
		return calendarDate{}, false
	}
	m := dateSlashRE.FindStringSubmatch(s)
	if m == nil {
		return calendarDate{}, false
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	mo, d := a, b
	if a > 12 && b <= 12 {
		d, mo = a, b
	}
	if mo >= 1 && mo <= 12 && d >= 1 && d <= 31 {
		return calendarDate{year: y, month: mo, day: d}, true
	}
	return calendarDate{}, false
}

// DatesEqualFlexible compares two values containing date tokens; both must
// parse and all three components must match.
func DatesEqualFlexible(a, b string) bool {
	da, ok := parseDate(a)
	if !ok {
		return false
	}
	db, ok := parseDate(b)
	if !ok {
		return false
	}
	return da == db
}

// EqualStrictOrFlexible is the value-equality used everywhere: identical
// after case/whitespace normalization, else time-flexible when both sides
// are whole times, else date-flexible when both contain dates.
func EqualStrictOrFlexible(a, b string) bool {
	if NormalizeCaseSpace(a) == NormalizeCaseSpace(b) {
		return true
	}
	if fullTimeRE.MatchString(a) && fullTimeRE.MatchString(b) {
		return TimesEqualFlexible(a, b)
	}
	if dateRE.MatchString(a) && dateRE.MatchString(b) {
		return DatesEqualFlexible(a, b)
	}
	return false
}

// anchoredValueRegex builds a case-insensitive pattern for value where
// internal spaces match any whitespace run. Boundary anchoring is enforced
// separately in anchoredFind.
func anchoredValueRegex(value string) *regexp.Regexp {
	esc := strings.ReplaceAll(regexp.QuoteMeta(value), " ", `\s+`)
	return regexp.MustCompile(`(?i)` + esc)
}

// anchoredFind locates value inside hay as a token: the match must not abut
// an alphanumeric character on a side where the value itself starts or ends
// alphanumeric. This keeps "WH-0" from matching inside "WH-07".
func anchoredFind(value, hay string) (start, end int, ok bool) {
	if value == "" || hay == "" {
		return 0, 0, false
	}
	needPrefix := isASCIIAlnum(value[0])
	needSuffix := isASCIIAlnum(value[len(value)-1])
	re := anchoredValueRegex(value)

	off := 0
	for off <= len(hay) {
		loc := re.FindStringIndex(hay[off:])
		if loc == nil {
			return 0, 0, false
		}
		s, e := off+loc[0], off+loc[1]
		okPrefix := !needPrefix || s == 0 || !isASCIIAlnum(hay[s-1])
		okSuffix := !needSuffix || e == len(hay) || !isASCIIAlnum(hay[e])
		if okPrefix && okSuffix {
			return s, e, true
		}
		off = s + 1
	}
	return 0, 0, false
}

// TokenPresent reports whether needle occurs in hay as an anchored token.
func TokenPresent(needle, hay string) bool {
	_, _, ok := anchoredFind(needle, hay)
	return ok
}
