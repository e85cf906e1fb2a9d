package render

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
)

// Converter turns operator-entered times, given in the base zone, into the
// local time of an airport. Loaded locations are cached for the life of
// the converter.
type Converter struct {
	dir  *Directory
	base *time.Location
	now  func() time.Time

	mu   sync.Mutex
	locs map[string]*time.Location
}

func NewConverter(dir *Directory, baseZone string) (*Converter, error) {
	base, err := time.LoadLocation(baseZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load base time zone %q: %w", baseZone, err)
	}
	return &Converter{
		dir:  dir,
		base: base,
		now:  time.Now,
		locs: map[string]*time.Location{baseZone: base},
	}, nil
}

func (c *Converter) location(zone string) (*time.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if loc, ok := c.locs[zone]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	c.locs[zone] = loc
	return loc, nil
}

// LocalTime converts date ("2006-01-02", empty for today) and clock ("15:04")
// from the base zone to the zone of the airport code. It returns the local
// date and clock. Airports without a known zone are returned unchanged.
func (c *Converter) LocalTime(date, clock, code string) (string, string, error) {
	a, ok := c.dir.Lookup(code)
	if !ok || a.TimeZone == "" {
		return date, clock, nil
	}

	day := strings.TrimSpace(date)
	if day == "" {
		day = c.now().In(c.base).Format(isoDate)
	}
	t, err := time.ParseInLocation(isoDate+" "+clockTime, day+" "+strings.TrimSpace(clock), c.base)
	if err != nil {
		return date, clock, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}

	loc, err := c.location(a.TimeZone)
	if err != nil {
		return date, clock, fmt.Errorf("failed to load time zone %q: %w", a.TimeZone, err)
	}

	local := t.In(loc)
	localDate := ""
	if strings.TrimSpace(date) != "" {
		localDate = local.Format(isoDate)
	}
	return localDate, local.Format(clockTime), nil
}

// ConvertValues returns a copy of v with originalTime and newTime moved to
// the departure airport's local time. Dates follow when the clock crosses
// midnight. Values that cannot be converted are kept as entered.
func (c *Converter) ConvertValues(v Values) Values {
	out := v.Clone()
	departure := out[DepartureCity]
	if strings.TrimSpace(departure) == "" {
		return out
	}

	pairs := []struct{ date, clock Field }{
		{OriginalDate, OriginalTime},
		{NewDate, NewTime},
	}
	for _, p := range pairs {
		if strings.TrimSpace(out[p.clock]) == "" {
			continue
		}
		date, clock, err := c.LocalTime(out[p.date], out[p.clock], departure)
		if err != nil {
			log.Debug().Err(err).Str("field", string(p.clock)).Str("airport", departure).Msg("Left time unconverted")
			continue
		}
		out[p.clock] = clock
		if date != "" {
			out[p.date] = date
		}
	}
	return out
}
