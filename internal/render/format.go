package render

import (
	"strings"
	"time"
	"unicode"
)

const (
	isoDate   = "2006-01-02"
	clockTime = "15:04"
)

// NormalizeFlightNumber reduces operator input such as "LY012", " 12" or
// "012" to its significant digits ("12"). It returns "" when no digits
// remain or when the input is not a carrier prefix followed by digits.
func NormalizeFlightNumber(v string) string {
	digits, ok := flightDigits(v)
	if !ok {
		return ""
	}
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func flightDigits(v string) (string, bool) {
	s := strings.TrimSpace(v)
	s = strings.TrimLeftFunc(s, unicode.IsLetter)
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}

// FormatFlightNumber prefixes the carrier code and pads to at least three
// digits: "7" -> "LY007", "1234" -> "LY1234". Input that is not a flight
// number is returned trimmed but otherwise verbatim.
func FormatFlightNumber(carrier, v string) string {
	digits := NormalizeFlightNumber(v)
	if digits == "" {
		return strings.TrimSpace(v)
	}
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return carrier + digits
}

// FormatDate renders an ISO date as "DD.MM" in Hebrew and "January 2" in
// English. Unparseable input is returned as is.
func FormatDate(v string, locale Locale) string {
	t, ok := parseDate(v)
	if !ok {
		return strings.TrimSpace(v)
	}
	if locale == Hebrew {
		return t.Format("02.01")
	}
	return t.Format("January 2")
}

func parseDate(v string) (time.Time, bool) {
	s := strings.TrimSpace(v)
	if len(s) > len(isoDate) && s[len(isoDate)] == 'T' {
		s = s[:len(isoDate)]
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatTime renders "HH:MM" as 24-hour in Hebrew and "3:04 PM" in English.
// Unparseable input is returned as is.
func FormatTime(v string, locale Locale) string {
	t, ok := parseClock(v)
	if !ok {
		return strings.TrimSpace(v)
	}
	if locale == Hebrew {
		return t.Format(clockTime)
	}
	return t.Format("3:04 PM")
}

func parseClock(v string) (time.Time, bool) {
	s := strings.TrimSpace(v)
	for _, layout := range []string{clockTime, "15:04:05", "3:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
