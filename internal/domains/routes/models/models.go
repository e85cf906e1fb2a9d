package models

import (
	"time"

	"github.com/google/uuid"
)

type FlightRoute struct {
	ID                   uuid.UUID `json:"id"`
	FlightNumber         string    `json:"flight_number"`
	DepartureCity        string    `json:"departure_city"`
	DepartureCityHebrew  string    `json:"departure_city_hebrew"`
	DepartureCityEnglish string    `json:"departure_city_english"`
	ArrivalCity          string    `json:"arrival_city"`
	ArrivalCityHebrew    string    `json:"arrival_city_hebrew"`
	ArrivalCityEnglish   string    `json:"arrival_city_english"`
	Airline              string    `json:"airline"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
