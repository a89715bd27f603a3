package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat identifies one recognized date layout. The engine tries the
// configured formats in order, so corpus variants that prefer a different
// priority become configuration instead of duplicated code paths.
type DateFormat int

const (
	// DateMonthDayDotYear is the two-token "Mon DD.YY" form ("Aug 26.25").
	DateMonthDayDotYear DateFormat = iota
	// DateDayMonYear is the one-token "D-Mon-YY" form ("15-Nov-24").
	DateDayMonYear
	// DateDayMonthYear is the one-token "DD-MM-YYYY" form ("15-11-2024").
	DateDayMonthYear
)

// defaultDateFormats is the priority order observed in the report corpus.
var defaultDateFormats = []DateFormat{
	DateMonthDayDotYear,
	DateDayMonYear,
	DateDayMonthYear,
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	monthAbbrevPattern = regexp.MustCompile(`(?i)^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?$`)
	dayDotYearPattern  = regexp.MustCompile(`^(\d{1,2})\.(\d{2})$`)
	dayMonYearPattern  = regexp.MustCompile(`(?i)^(\d{1,2})-(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*-(\d{2})$`)
	dayMonthYearPat    = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

// monthFromAbbrev resolves "Aug", "aug", "August." to the month. Zero value
// and false when the token is not a month abbreviation.
func monthFromAbbrev(tok string) (time.Month, bool) {
	m := monthAbbrevPattern.FindStringSubmatch(tok)
	if m == nil {
		return 0, false
	}
	mon, ok := months[strings.ToLower(m[1])]
	return mon, ok
}

// isMonthAbbrev reports whether tok looks like a month abbreviation.
func isMonthAbbrev(tok string) bool {
	_, ok := monthFromAbbrev(tok)
	return ok
}

// parseDate scans a small window of tokens for a date in one of the
// configured formats, tried in order. It returns the normalized YYYY-MM-DD
// string and the count of tokens consumed, or ("", 0) when nothing matches.
// It never fails in any other way.
func parseDate(tokens []string, formats []DateFormat) (string, int) {
	if len(tokens) == 0 {
		return "", 0
	}
	for _, f := range formats {
		switch f {
		case DateMonthDayDotYear:
			if len(tokens) < 2 {
				continue
			}
			mon, ok := monthFromAbbrev(tokens[0])
			if !ok {
				continue
			}
			m := dayDotYearPattern.FindStringSubmatch(tokens[1])
			if m == nil {
				continue
			}
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[2])
			if iso, ok := normalizeDate(2000+year, mon, day); ok {
				return iso, 2
			}
		case DateDayMonYear:
			m := dayMonYearPattern.FindStringSubmatch(tokens[0])
			if m == nil {
				continue
			}
			day, _ := strconv.Atoi(m[1])
			mon, ok := months[strings.ToLower(m[2])]
			if !ok {
				continue
			}
			year, _ := strconv.Atoi(m[3])
			if iso, ok := normalizeDate(2000+year, mon, day); ok {
				return iso, 1
			}
		case DateDayMonthYear:
			m := dayMonthYearPat.FindStringSubmatch(tokens[0])
			if m == nil {
				continue
			}
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if month < 1 || month > 12 {
				continue
			}
			if iso, ok := normalizeDate(year, time.Month(month), day); ok {
				return iso, 1
			}
		}
	}
	return "", 0
}

// normalizeDate validates the calendar date and formats it. time.Date
// silently rolls invalid days into the next month, so the day is checked
// after construction.
func normalizeDate(year int, month time.Month, day int) (string, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()), true
}
