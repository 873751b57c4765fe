package etl

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// ParseStatus is the diagnostic code attached to every coercion result. The
// parse helpers are total: they never fail, they classify.
type ParseStatus int

const (
	// ParseOK means the raw value produced a real value.
	ParseOK ParseStatus = iota
	// ParseNull means the raw value was empty or a known null sentinel.
	ParseNull
	// ParseDefaulted means the raw value was garbage and a safe default was
	// substituted; callers should record it in the run summary.
	ParseDefaulted
)

var plateKeep = regexp.MustCompile(`[^A-Z0-9]+`)

// NormalizePlate uppercases and strips everything outside [A-Z0-9]. Empty or
// null-ish input yields "" and the caller decides whether to drop the row.
// Idempotent: normalizing an already-normalized plate is a no-op.
func NormalizePlate(raw string) string {
	return plateKeep.ReplaceAllString(strings.ToUpper(strings.TrimSpace(raw)), "")
}

var nullSentinels = map[string]struct{}{
	"":                {},
	"NONE":            {},
	"NAN":             {},
	"N/A":             {},
	"NA":              {},
	"NO":              {},
	"NULL":            {},
	"SIN VENCIMIENTO": {},
	"SIN FECHA":       {},
	"NO APLICA":       {},
}

// IsNullSentinel reports whether raw is one of the spreadsheet conventions
// for "no value".
func IsNullSentinel(raw string) bool {
	_, ok := nullSentinels[strings.ToUpper(strings.TrimSpace(raw))]
	return ok
}

var monthYearPattern = regexp.MustCompile(`^[A-Z]{3}-\d{2}$`)

// Spanish and English three-letter month abbreviations seen in the exports.
var monthAbbrevs = map[string]time.Month{
	"ENE": time.January, "JAN": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"ABR": time.April, "APR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August, "AUG": time.August,
	"SEP": time.September, "SET": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DIC": time.December, "DEC": time.December,
}

// Layouts tried before handing the value to dateparse; day-before-month bias.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-01-02",
	"2.1.2006",
	"2/1/2006 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"2/1/06",
	"2-1-06",
	"1/2006",
}

// ParseDate coerces a raw cell into a day-granular UTC date. Sentinels map to
// (nil, ParseNull); anything unparseable maps to (nil, ParseDefaulted) so the
// caller can log it. Never errors.
func ParseDate(raw string, ref time.Time) (*time.Time, ParseStatus) {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	if _, ok := nullSentinels[cleaned]; ok {
		return nil, ParseNull
	}

	if monthYearPattern.MatchString(cleaned) {
		if t, ok := parseMonthYear(cleaned, ref); ok {
			return &t, ParseOK
		}
		return nil, ParseDefaulted
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return truncated(t), ParseOK
		}
	}

	t, err := dateparse.ParseAny(cleaned,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return nil, ParseDefaulted
	}
	return truncated(t), ParseOK
}

// parseMonthYear handles the MMM-YY expiration convention ("NOV-25"): day 1 of
// the month, two-digit year resolved against a 50-year pivot so the naive
// current-century reading is never more than 50 years in the past.
func parseMonthYear(cleaned string, ref time.Time) (time.Time, bool) {
	month, ok := monthAbbrevs[cleaned[:3]]
	if !ok {
		return time.Time{}, false
	}
	yy := int(cleaned[4]-'0')*10 + int(cleaned[5]-'0')
	year := ref.Year()/100*100 + yy
	if year < ref.Year()-50 {
		year += 100
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

func truncated(t time.Time) *time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

// ParseCurrency applies the Latin-American separator heuristic: with both
// separators present "." is thousands and "," is decimal; a lone "," is the
// decimal mark. Best effort, not a strict currency parser — garbage coerces
// to 0 and the result is rounded to 2 decimals.
func ParseCurrency(raw string) (float64, ParseStatus) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, ParseNull
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ParseDefaulted
	}
	return d.Round(2).InexactFloat64(), ParseOK
}

// ParseKilometers coerces odometer-style cells to whole kilometers. Sentinels
// yield nil; garbage yields (nil, ParseDefaulted).
func ParseKilometers(raw string) (*int64, ParseStatus) {
	cleaned := strings.TrimSpace(raw)
	if IsNullSentinel(cleaned) {
		return nil, ParseNull
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, ParseDefaulted
	}
	km := d.Round(0).IntPart()
	return &km, ParseOK
}

// ParseYear coerces model-year cells to an int, defaulting to 0.
func ParseYear(raw string) (int, ParseStatus) {
	cleaned := strings.TrimSpace(raw)
	if IsNullSentinel(cleaned) {
		return 0, ParseNull
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, ParseDefaulted
	}
	return int(d.Round(0).IntPart()), ParseOK
}

// NormalizeMobileUnit forces the unit number to a clean string, dropping the
// ".0" artifacts left by numeric spreadsheet cells.
func NormalizeMobileUnit(raw string) string {
	s := strings.TrimSpace(raw)
	if IsNullSentinel(s) {
		return ""
	}
	return strings.TrimSuffix(s, ".0")
}
