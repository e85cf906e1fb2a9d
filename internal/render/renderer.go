package render

import "strings"

// CityNamer resolves an airport code to a display name.
type CityNamer interface {
	CityName(code string, locale Locale) (string, bool)
}

// Rendered holds the two language versions of one message.
type Rendered struct {
	Hebrew  string `json:"hebrew"`
	English string `json:"english"`
}

type Renderer struct {
	cities     CityNamer
	carrier    string
	replaceAll bool
}

type Option func(*Renderer)

// WithCarrier sets the prefix for flight numbers. Defaults to "LY".
func WithCarrier(code string) Option {
	return func(r *Renderer) {
		if code != "" {
			r.carrier = code
		}
	}
}

// WithReplaceAll substitutes every occurrence of a placeholder instead of
// only the first one.
func WithReplaceAll(all bool) Option {
	return func(r *Renderer) {
		r.replaceAll = all
	}
}

func NewRenderer(cities CityNamer, opts ...Option) *Renderer {
	r := &Renderer{
		cities:  cities,
		carrier: "LY",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithCities returns a renderer sharing r's options but resolving cities
// through c. Used when a flight route supplies its own city names.
func (r *Renderer) WithCities(c CityNamer) *Renderer {
	cp := *r
	cp.cities = c
	return &cp
}

// Render fills the known placeholders of content for one locale. By default
// only the first occurrence of each placeholder is replaced; later repeats
// stay as literal text. Unknown {tokens} are left untouched.
func (r *Renderer) Render(content string, values Values, locale Locale) string {
	n := 1
	if r.replaceAll {
		n = -1
	}

	rendered := content
	for _, f := range Fields {
		token := f.Token()
		if !strings.Contains(rendered, token) {
			continue
		}
		rendered = strings.Replace(rendered, token, r.FormatValue(f, values[f], locale), n)
	}
	return rendered
}

// RenderPair renders the Hebrew and English contents of a template.
func (r *Renderer) RenderPair(hebrew, english string, values Values) Rendered {
	return Rendered{
		Hebrew:  r.Render(hebrew, values, Hebrew),
		English: r.Render(english, values, English),
	}
}

// FormatValue returns the display form of a single field, or the sentinel
// when the value is empty.
func (r *Renderer) FormatValue(f Field, raw string, locale Locale) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Sentinel
	}

	switch f {
	case FlightNumber, NewFlightNumber:
		return FormatFlightNumber(r.carrier, v)
	case OriginalDate, NewDate:
		return FormatDate(v, locale)
	case OriginalTime, NewTime:
		return FormatTime(v, locale)
	case DepartureCity, ArrivalCity:
		if r.cities != nil {
			if name, ok := r.cities.CityName(v, locale); ok {
				return name
			}
		}
		return v
	default:
		return v
	}
}
