package routes

import (
	"errors"
	"strings"
	"time"

	"github.com/sangkips/flight-notify-service/internal/render"
)

var ErrRouteNotFound = errors.New("route not found")

const (
	AirlineElAl   = "ELAL"
	AirlineSundor = "Sundor"
)

// FlightRoute maps a flight number to its city pair. FlightNumber is stored
// normalized, without carrier prefix or leading zeros.
type FlightRoute struct {
	ID                   string    `json:"id" firestore:"-"`
	FlightNumber         string    `json:"flightNumber" firestore:"flightNumber"`
	DepartureCity        string    `json:"departureCity" firestore:"departureCity"`
	DepartureCityHebrew  string    `json:"departureCityHebrew" firestore:"departureCityHebrew"`
	DepartureCityEnglish string    `json:"departureCityEnglish" firestore:"departureCityEnglish"`
	ArrivalCity          string    `json:"arrivalCity" firestore:"arrivalCity"`
	ArrivalCityHebrew    string    `json:"arrivalCityHebrew" firestore:"arrivalCityHebrew"`
	ArrivalCityEnglish   string    `json:"arrivalCityEnglish" firestore:"arrivalCityEnglish"`
	Airline              string    `json:"airline" firestore:"airline"`
	CreatedAt            time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Airports returns the route's city names as directory overrides.
func (r FlightRoute) Airports() []render.Airport {
	return []render.Airport{
		{Code: r.DepartureCity, Hebrew: r.DepartureCityHebrew, English: r.DepartureCityEnglish},
		{Code: r.ArrivalCity, Hebrew: r.ArrivalCityHebrew, English: r.ArrivalCityEnglish},
	}
}

// NormalizeAirline maps accepted spellings to the canonical airline name.
// Empty input means El Al.
func NormalizeAirline(s string) (string, bool) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "", "ELAL", "LY":
		return AirlineElAl, true
	case "SUNDOR":
		return AirlineSundor, true
	default:
		return "", false
	}
}

type RouteRequest struct {
	FlightNumber         string `json:"flightNumber" validate:"notblank"`
	DepartureCity        string `json:"departureCity" validate:"notblank,max=8"`
	DepartureCityHebrew  string `json:"departureCityHebrew"`
	DepartureCityEnglish string `json:"departureCityEnglish"`
	ArrivalCity          string `json:"arrivalCity" validate:"notblank,max=8"`
	ArrivalCityHebrew    string `json:"arrivalCityHebrew"`
	ArrivalCityEnglish   string `json:"arrivalCityEnglish"`
	Airline              string `json:"airline"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}
