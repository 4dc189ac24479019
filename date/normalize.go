package date

import (
	"strconv"
	"strings"
	"time"

	"github.com/etnz/mwrr/fold"
)

// Months is the closed vocabulary of localized month names recognized in textual dates.
// Keys are in folded form (lower case, no accents).
var Months = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// connectors are words joining day, month and year in long dates ("15 de enero de 2024").
var connectors = map[string]bool{
	"de":  true,
	"del": true,
}

// textLayouts are tried in order once month names have been translated.
var textLayouts = []string{
	"2 January 2006",
	"January 2 2006",
	"2 Jan 2006",
	"Jan 2 2006",
}

// numericSeparators are the characters that identify a numeric date.
const numericSeparators = "/-"

// Normalize converts a raw date value into a Date.
//
// raw can be a Date (returned unchanged), a time.Time, or a string. Strings
// containing '/' or '-' are read as numeric dates, day first ("05/03/2024" is
// the 5th of March) unless the first field has four digits ("2024-03-05").
// Other strings are read as long dates, possibly with Spanish month names
// ("5 de marzo de 2024").
//
// It returns false if raw is empty or cannot be read as a single valid day.
func Normalize(raw any) (Date, bool) {
	switch v := raw.(type) {
	case nil:
		return Date{}, false
	case Date:
		return v, !v.IsZero()
	case time.Time:
		if v.IsZero() {
			return Date{}, false
		}
		return FromTime(v), true
	case string:
		return normalizeText(v)
	default:
		return Date{}, false
	}
}

func normalizeText(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	if strings.ContainsAny(s, numericSeparators) {
		return parseNumeric(s)
	}
	return parseTextual(s)
}

// parseNumeric reads "DD/MM/YYYY", "DD-MM-YY", "YYYY-MM-DD" and the like,
// optionally followed by a clock time.
func parseNumeric(s string) (Date, bool) {
	fields := strings.Fields(s)
	switch {
	case len(fields) == 2 && isClock(fields[1]):
	case len(fields) == 1:
		if i := strings.IndexByte(s, 'T'); i > 0 && isClock(s[i+1:]) {
			fields[0] = s[:i]
		}
	default:
		return Date{}, false
	}
	s = fields[0]

	var sep string
	switch {
	case strings.Contains(s, "/") && strings.Contains(s, "-"):
		return Date{}, false
	case strings.Contains(s, "/"):
		sep = "/"
	default:
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return Date{}, false
	}
	ys, ms, ds := parts[2], parts[1], parts[0]
	if len(parts[0]) == 4 {
		ys, ds = parts[0], parts[2]
	}

	year, ok := atoi(ys)
	if !ok {
		return Date{}, false
	}
	switch len(ys) {
	case 4:
	case 2:
		// same pivot as the time package: 69-99 is 19xx.
		if year >= 69 {
			year += 1900
		} else {
			year += 2000
		}
	default:
		return Date{}, false
	}
	month, ok := atoi(ms)
	if !ok || len(ms) > 2 || month < 1 || month > 12 {
		return Date{}, false
	}
	day, ok := atoi(ds)
	if !ok || len(ds) > 2 {
		return Date{}, false
	}
	d := New(year, time.Month(month), day)
	if d.Day() != day || d.Month() != time.Month(month) {
		// New normalized an overflow like 31/02.
		return Date{}, false
	}
	return d, true
}

// parseTextual translates month names, drops connectors and parses the remaining text.
func parseTextual(s string) (Date, bool) {
	tokens := strings.Fields(strings.ReplaceAll(fold.String(s), ",", " "))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if connectors[tok] {
			continue
		}
		if m, ok := Months[tok]; ok {
			tok = m.String()
		}
		out = append(out, tok)
	}
	text := strings.Join(out, " ")
	for _, layout := range textLayouts {
		if on, err := time.Parse(layout, text); err == nil {
			return FromTime(on), true
		}
	}
	return Date{}, false
}

func isClock(s string) bool {
	for _, layout := range []string{"15:04:05", "15:04", "15:04:05.000"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// atoi parses a non-empty string of ASCII digits.
func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
