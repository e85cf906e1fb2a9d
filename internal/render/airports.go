package render

import "strings"

// Airport holds the display names and IANA zone of an airport code.
type Airport struct {
	Code     string `json:"code"`
	Hebrew   string `json:"hebrew"`
	English  string `json:"english"`
	TimeZone string `json:"timeZone,omitempty"`
}

var defaultAirports = []Airport{
	{Code: "TLV", Hebrew: "תל אביב", English: "Tel Aviv", TimeZone: "Asia/Jerusalem"},
	{Code: "ETM", Hebrew: "אילת", English: "Eilat", TimeZone: "Asia/Jerusalem"},
	{Code: "JFK", Hebrew: "ניו יורק", English: "New York", TimeZone: "America/New_York"},
	{Code: "EWR", Hebrew: "ניוארק", English: "Newark", TimeZone: "America/New_York"},
	{Code: "BOS", Hebrew: "בוסטון", English: "Boston", TimeZone: "America/New_York"},
	{Code: "MIA", Hebrew: "מיאמי", English: "Miami", TimeZone: "America/New_York"},
	{Code: "LAX", Hebrew: "לוס אנג'לס", English: "Los Angeles", TimeZone: "America/Los_Angeles"},
	{Code: "LAS", Hebrew: "לאס וגאס", English: "Las Vegas", TimeZone: "America/Los_Angeles"},
	{Code: "YYZ", Hebrew: "טורונטו", English: "Toronto", TimeZone: "America/Toronto"},
	{Code: "YUL", Hebrew: "מונטריאול", English: "Montreal", TimeZone: "America/Toronto"},
	{Code: "LHR", Hebrew: "לונדון", English: "London", TimeZone: "Europe/London"},
	{Code: "LTN", Hebrew: "לונדון לוטון", English: "London Luton", TimeZone: "Europe/London"},
	{Code: "MAN", Hebrew: "מנצ'סטר", English: "Manchester", TimeZone: "Europe/London"},
	{Code: "DUB", Hebrew: "דבלין", English: "Dublin", TimeZone: "Europe/Dublin"},
	{Code: "CDG", Hebrew: "פריז", English: "Paris", TimeZone: "Europe/Paris"},
	{Code: "NCE", Hebrew: "ניס", English: "Nice", TimeZone: "Europe/Paris"},
	{Code: "AMS", Hebrew: "אמסטרדם", English: "Amsterdam", TimeZone: "Europe/Amsterdam"},
	{Code: "FRA", Hebrew: "פרנקפורט", English: "Frankfurt", TimeZone: "Europe/Berlin"},
	{Code: "MUC", Hebrew: "מינכן", English: "Munich", TimeZone: "Europe/Berlin"},
	{Code: "BER", Hebrew: "ברלין", English: "Berlin", TimeZone: "Europe/Berlin"},
	{Code: "ZRH", Hebrew: "ציריך", English: "Zurich", TimeZone: "Europe/Zurich"},
	{Code: "GVA", Hebrew: "ז'נבה", English: "Geneva", TimeZone: "Europe/Zurich"},
	{Code: "VIE", Hebrew: "וינה", English: "Vienna", TimeZone: "Europe/Vienna"},
	{Code: "PRG", Hebrew: "פראג", English: "Prague", TimeZone: "Europe/Prague"},
	{Code: "BUD", Hebrew: "בודפשט", English: "Budapest", TimeZone: "Europe/Budapest"},
	{Code: "WAW", Hebrew: "ורשה", English: "Warsaw", TimeZone: "Europe/Warsaw"},
	{Code: "KRK", Hebrew: "קרקוב", English: "Krakow", TimeZone: "Europe/Warsaw"},
	{Code: "OTP", Hebrew: "בוקרשט", English: "Bucharest", TimeZone: "Europe/Bucharest"},
	{Code: "SOF", Hebrew: "סופיה", English: "Sofia", TimeZone: "Europe/Sofia"},
	{Code: "FCO", Hebrew: "רומא", English: "Rome", TimeZone: "Europe/Rome"},
	{Code: "MXP", Hebrew: "מילאנו", English: "Milan", TimeZone: "Europe/Rome"},
	{Code: "BCN", Hebrew: "ברצלונה", English: "Barcelona", TimeZone: "Europe/Madrid"},
	{Code: "MAD", Hebrew: "מדריד", English: "Madrid", TimeZone: "Europe/Madrid"},
	{Code: "LIS", Hebrew: "ליסבון", English: "Lisbon", TimeZone: "Europe/Lisbon"},
	{Code: "ATH", Hebrew: "אתונה", English: "Athens", TimeZone: "Europe/Athens"},
	{Code: "SKG", Hebrew: "סלוניקי", English: "Thessaloniki", TimeZone: "Europe/Athens"},
	{Code: "RHO", Hebrew: "רודוס", English: "Rhodes", TimeZone: "Europe/Athens"},
	{Code: "HER", Hebrew: "הרקליון", English: "Heraklion", TimeZone: "Europe/Athens"},
	{Code: "LCA", Hebrew: "לרנקה", English: "Larnaca", TimeZone: "Asia/Nicosia"},
	{Code: "MLA", Hebrew: "מלטה", English: "Malta", TimeZone: "Europe/Malta"},
	{Code: "TBS", Hebrew: "טביליסי", English: "Tbilisi", TimeZone: "Asia/Tbilisi"},
	{Code: "DXB", Hebrew: "דובאי", English: "Dubai", TimeZone: "Asia/Dubai"},
	{Code: "BOM", Hebrew: "מומבאי", English: "Mumbai", TimeZone: "Asia/Kolkata"},
	{Code: "DEL", Hebrew: "דלהי", English: "Delhi", TimeZone: "Asia/Kolkata"},
	{Code: "BKK", Hebrew: "בנגקוק", English: "Bangkok", TimeZone: "Asia/Bangkok"},
	{Code: "HKT", Hebrew: "פוקט", English: "Phuket", TimeZone: "Asia/Bangkok"},
	{Code: "NRT", Hebrew: "טוקיו", English: "Tokyo", TimeZone: "Asia/Tokyo"},
	{Code: "PEK", Hebrew: "בייג'ינג", English: "Beijing", TimeZone: "Asia/Shanghai"},
	{Code: "JNB", Hebrew: "יוהנסבורג", English: "Johannesburg", TimeZone: "Africa/Johannesburg"},
}

// Directory resolves airport codes to display names and time zones.
type Directory struct {
	airports map[string]Airport
}

// NewDirectory returns the built-in airport table with extra entries merged
// on top. Extra entries win over built-in ones with the same code.
func NewDirectory(extra ...Airport) *Directory {
	d := &Directory{airports: make(map[string]Airport, len(defaultAirports)+len(extra))}
	for _, a := range defaultAirports {
		d.airports[a.Code] = a
	}
	d.merge(extra)
	return d
}

// With returns a copy of d with overrides applied. Empty override names keep
// the existing name, so a route that only knows the Hebrew name does not
// wipe the English one.
func (d *Directory) With(overrides ...Airport) *Directory {
	cp := &Directory{airports: make(map[string]Airport, len(d.airports)+len(overrides))}
	for k, v := range d.airports {
		cp.airports[k] = v
	}
	cp.merge(overrides)
	return cp
}

func (d *Directory) merge(entries []Airport) {
	for _, a := range entries {
		code := normalizeCode(a.Code)
		if code == "" {
			continue
		}
		cur := d.airports[code]
		cur.Code = code
		if a.Hebrew != "" {
			cur.Hebrew = a.Hebrew
		}
		if a.English != "" {
			cur.English = a.English
		}
		if a.TimeZone != "" {
			cur.TimeZone = a.TimeZone
		}
		d.airports[code] = cur
	}
}

func (d *Directory) Lookup(code string) (Airport, bool) {
	a, ok := d.airports[normalizeCode(code)]
	return a, ok
}

// CityName returns the display name of code in the given locale.
func (d *Directory) CityName(code string, locale Locale) (string, bool) {
	a, ok := d.Lookup(code)
	if !ok {
		return "", false
	}
	name := a.English
	if locale == Hebrew {
		name = a.Hebrew
	}
	return name, name != ""
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
