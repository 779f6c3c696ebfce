// Package dateparse parses the date and period tokens found in
// human-produced financial sheets: numeric dates in either day/month
// order, Spanish and English month names, quarter and fiscal-year
// labels. Every parse fails soft to (zero, false) instead of erroring.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/diegoavarela/warren-sub012/internal/locale"
)

// spanishMonths maps Spanish month names and abbreviations to English
// so the time package layouts can take over. Longer names first so
// "marzo" is not clipped by "mar".
var spanishMonths = []struct{ es, en string }{
	{"septiembre", "September"},
	{"setiembre", "September"},
	{"noviembre", "November"},
	{"diciembre", "December"},
	{"febrero", "February"},
	{"octubre", "October"},
	{"agosto", "August"},
	{"enero", "January"},
	{"marzo", "March"},
	{"abril", "April"},
	{"junio", "June"},
	{"julio", "July"},
	{"mayo", "May"},
	{"ene", "Jan"},
	{"feb", "Feb"},
	{"mar", "Mar"},
	{"abr", "Apr"},
	{"may", "May"},
	{"jun", "Jun"},
	{"jul", "Jul"},
	{"ago", "Aug"},
	{"sep", "Sep"},
	{"set", "Sep"},
	{"oct", "Oct"},
	{"nov", "Nov"},
	{"dic", "Dec"},
}

var (
	numericDateRe = regexp.MustCompile(`^(\d{1,4})[/.\-](\d{1,2})[/.\-](\d{2,4})$`)
	monthYearRe   = regexp.MustCompile(`^([A-Za-z]{3,9})[ /.\-]+'?(\d{2,4})$`)
	quarterRe     = regexp.MustCompile(`(?i)^q([1-4])[ \-]?(\d{2,4})`)
	fiscalYearRe  = regexp.MustCompile(`(?i)^fy[ \-]?(\d{2,4})$`)
	yearMonthRe   = regexp.MustCompile(`^(\d{4})[/.\-](\d{1,2})$`)
)

// dateShapeRes is the fixed set of shapes the column detector samples
// against. A cell matching any of these "looks like" a date or period.
var dateShapeRes = []*regexp.Regexp{
	numericDateRe,
	monthYearRe,
	quarterRe,
	fiscalYearRe,
	yearMonthRe,
}

// Parse converts a cell into a date. Period tokens resolve to the first
// day of the period. Returns false when no interpretation works.
func Parse(cell string, loc locale.Info) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	s = normalizeMonths(s)

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		return parseNumeric(m, loc)
	}
	if m := yearMonthRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
		}
		return time.Time{}, false
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		return parseMonthYear(m[1], m[2])
	}
	if m := quarterRe.FindStringSubmatch(s); m != nil {
		q, _ := strconv.Atoi(m[1])
		year := expandYear(m[2])
		return time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), true
	}
	if m := fiscalYearRe.FindStringSubmatch(s); m != nil {
		return time.Date(expandYear(m[1]), time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	// Last-resort generic layouts.
	for _, layout := range []string{
		"2006-01-02", "January 2, 2006", "2 January 2006", "Jan 2, 2006",
		"January 2006", "Jan 2006", time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LooksLikeDate reports whether a cell matches one of the recognized
// date or period shapes, without committing to a full parse.
func LooksLikeDate(cell string) bool {
	s := normalizeMonths(strings.TrimSpace(cell))
	if s == "" {
		return false
	}
	for _, re := range dateShapeRes {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// normalizeMonths substitutes Spanish month names positionally so the
// rest of the parser only deals with English.
func normalizeMonths(s string) string {
	lower := strings.ToLower(s)
	for _, m := range spanishMonths {
		i := strings.Index(lower, m.es)
		if i < 0 {
			continue
		}
		// Whole-token match only; "ene" must not fire inside "general".
		if i > 0 && isLetter(lower[i-1]) {
			continue
		}
		if end := i + len(m.es); end < len(lower) && isLetter(lower[end]) {
			continue
		}
		return s[:i] + m.en + s[i+len(m.es):]
	}
	return s
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func parseNumeric(m []string, loc locale.Info) (time.Time, bool) {
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	c, _ := strconv.Atoi(m[3])

	// yyyy-mm-dd regardless of locale.
	if a > 999 {
		return makeDate(a, b, c)
	}

	year := expandYear(m[3])
	day, month := a, b
	if !loc.DayFirst() {
		day, month = b, a
	}
	// Swap when the chosen order is impossible but the other is not.
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	return makeDate(year, month, day)
}

func parseMonthYear(name, year string) (time.Time, bool) {
	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, name); err == nil {
			return time.Date(expandYear(year), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// expandYear treats 2-digit years as 20xx.
func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if y < 100 {
		y += 2000
	}
	return y
}
