package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// SpanishMonth returns the lower-case Spanish name of m.
func SpanishMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return spanishMonths[m-1]
}

// DateParts is a calendar date kept as the strings found in the payload.
type DateParts struct {
	Day   string
	Month string
	Year  string
}

// SplitDate splits a date written with "/" or "-" separators. A four-digit
// first component means year-month-day, otherwise day-month-year.
func SplitDate(s string) (DateParts, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(strings.ReplaceAll(s, "/", "-"), "-")
	if len(parts) != 3 {
		return DateParts{}, fmt.Errorf("normalize: malformed date %q", s)
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if _, err := strconv.Atoi(parts[i]); err != nil {
			return DateParts{}, fmt.Errorf("normalize: malformed date %q", s)
		}
	}
	if len(parts[0]) == 4 {
		return DateParts{Day: parts[2], Month: parts[1], Year: parts[0]}, nil
	}
	return DateParts{Day: parts[0], Month: parts[1], Year: parts[2]}, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ContractDate resolves the contract date from a payload value. Strings
// in ISO form, day-first dates and time.Time values are accepted; anything
// else, including an absent value, yields now.
func ContractDate(v any, now time.Time) time.Time {
	switch t := v.(type) {
	case time.Time:
		if !t.IsZero() {
			return t
		}
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d
			}
		}
		if p, err := SplitDate(s); err == nil {
			y, _ := strconv.Atoi(p.Year)
			m, _ := strconv.Atoi(p.Month)
			d, _ := strconv.Atoi(p.Day)
			if m >= 1 && m <= 12 && d >= 1 && d <= 31 && y > 0 {
				return time.Date(y, time.Month(m), d, 0, 0, 0, 0, now.Location())
			}
		}
	}
	return now
}
