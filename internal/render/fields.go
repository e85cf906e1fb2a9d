package render

import (
	"fmt"
	"strings"
)

// Field is one of the fixed placeholder names a template may reference as {name}.
type Field string

const (
	FlightNumber     Field = "flightNumber"
	NewFlightNumber  Field = "newFlightNumber"
	DepartureCity    Field = "departureCity"
	ArrivalCity      Field = "arrivalCity"
	OriginalDate     Field = "originalDate"
	NewDate          Field = "newDate"
	OriginalTime     Field = "originalTime"
	NewTime          Field = "newTime"
	LoungeOpenTime   Field = "loungeOpenTime"
	CounterOpenTime  Field = "counterOpenTime"
	CounterCloseTime Field = "counterCloseTime"
	InternetCode     Field = "internetCode"
)

// Fields lists every known placeholder in substitution order.
var Fields = []Field{
	FlightNumber,
	NewFlightNumber,
	DepartureCity,
	ArrivalCity,
	OriginalDate,
	NewDate,
	OriginalTime,
	NewTime,
	LoungeOpenTime,
	CounterOpenTime,
	CounterCloseTime,
	InternetCode,
}

// Sentinel replaces a placeholder whose field has no value.
const Sentinel = "***"

// Token returns the placeholder marker as it appears in template text.
func (f Field) Token() string {
	return "{" + string(f) + "}"
}

// Valid reports whether f is one of the known placeholders.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Values maps placeholder names to raw operator input.
type Values map[Field]string

// Clone returns a copy that can be modified without touching v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// FromMap builds Values from a loosely typed map, dropping unknown keys.
func FromMap(m map[string]string) Values {
	out := make(Values, len(m))
	for k, val := range m {
		if f := Field(k); f.Valid() {
			out[f] = val
		}
	}
	return out
}

// FieldsIn returns, in substitution order, the placeholders that occur in
// any of the given contents. Operator forms show exactly this set.
func FieldsIn(contents ...string) []Field {
	found := make([]Field, 0, len(Fields))
	for _, f := range Fields {
		token := f.Token()
		for _, c := range contents {
			if strings.Contains(c, token) {
				found = append(found, f)
				break
			}
		}
	}
	return found
}

// Locale selects the language a message is rendered in.
type Locale string

const (
	Hebrew  Locale = "he"
	English Locale = "en"
)

func ParseLocale(s string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "he", "hebrew":
		return Hebrew, nil
	case "en", "english":
		return English, nil
	default:
		return "", fmt.Errorf("unsupported locale %q", s)
	}
}
