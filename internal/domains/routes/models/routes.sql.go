package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const routeColumns = `id, flight_number, departure_city, departure_city_hebrew, departure_city_english, arrival_city, arrival_city_hebrew, arrival_city_english, airline, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFlightRoute(row scanner) (FlightRoute, error) {
	var i FlightRoute
	err := row.Scan(
		&i.ID,
		&i.FlightNumber,
		&i.DepartureCity,
		&i.DepartureCityHebrew,
		&i.DepartureCityEnglish,
		&i.ArrivalCity,
		&i.ArrivalCityHebrew,
		&i.ArrivalCityEnglish,
		&i.Airline,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createRoute = `-- name: CreateRoute :one
INSERT INTO flight_routes (id, flight_number, departure_city, departure_city_hebrew, departure_city_english, arrival_city, arrival_city_hebrew, arrival_city_english, airline, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING ` + routeColumns

type CreateRouteParams struct {
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
}

func (q *Queries) CreateRoute(ctx context.Context, arg CreateRouteParams) (FlightRoute, error) {
	row := q.db.QueryRowContext(ctx, createRoute,
		arg.ID,
		arg.FlightNumber,
		arg.DepartureCity,
		arg.DepartureCityHebrew,
		arg.DepartureCityEnglish,
		arg.ArrivalCity,
		arg.ArrivalCityHebrew,
		arg.ArrivalCityEnglish,
		arg.Airline,
		arg.CreatedAt,
	)
	return scanFlightRoute(row)
}

const getRoute = `-- name: GetRoute :one
SELECT ` + routeColumns + `
FROM flight_routes
WHERE id = $1
`

func (q *Queries) GetRoute(ctx context.Context, id uuid.UUID) (FlightRoute, error) {
	return scanFlightRoute(q.db.QueryRowContext(ctx, getRoute, id))
}

const getRouteByFlightNumber = `-- name: GetRouteByFlightNumber :one
SELECT ` + routeColumns + `
FROM flight_routes
WHERE flight_number = $1
ORDER BY updated_at DESC
LIMIT 1
`

func (q *Queries) GetRouteByFlightNumber(ctx context.Context, flightNumber string) (FlightRoute, error) {
	return scanFlightRoute(q.db.QueryRowContext(ctx, getRouteByFlightNumber, flightNumber))
}

const listRoutes = `-- name: ListRoutes :many
SELECT ` + routeColumns + `
FROM flight_routes
ORDER BY flight_number ASC
`

func (q *Queries) ListRoutes(ctx context.Context) ([]FlightRoute, error) {
	rows, err := q.db.QueryContext(ctx, listRoutes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FlightRoute
	for rows.Next() {
		i, err := scanFlightRoute(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateRoute = `-- name: UpdateRoute :one
UPDATE flight_routes
SET flight_number = $2,
    departure_city = $3,
    departure_city_hebrew = $4,
    departure_city_english = $5,
    arrival_city = $6,
    arrival_city_hebrew = $7,
    arrival_city_english = $8,
    airline = $9,
    updated_at = $10
WHERE id = $1
RETURNING ` + routeColumns

type UpdateRouteParams struct {
	ID                   uuid.UUID `json:"id"`
	FlightNumber         string    `json:"flight_number"`
	DepartureCity        string    `json:"departure_city"`
	DepartureCityHebrew  string    `json:"departure_city_hebrew"`
	DepartureCityEnglish string    `json:"departure_city_english"`
	ArrivalCity          string    `json:"arrival_city"`
	ArrivalCityHebrew    string    `json:"arrival_city_hebrew"`
	ArrivalCityEnglish   string    `json:"arrival_city_english"`
	Airline              string    `json:"airline"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (q *Queries) UpdateRoute(ctx context.Context, arg UpdateRouteParams) (FlightRoute, error) {
	row := q.db.QueryRowContext(ctx, updateRoute,
		arg.ID,
		arg.FlightNumber,
		arg.DepartureCity,
		arg.DepartureCityHebrew,
		arg.DepartureCityEnglish,
		arg.ArrivalCity,
		arg.ArrivalCityHebrew,
		arg.ArrivalCityEnglish,
		arg.Airline,
		arg.UpdatedAt,
	)
	return scanFlightRoute(row)
}

const deleteRoute = `-- name: DeleteRoute :execrows
DELETE FROM flight_routes WHERE id = $1
`

func (q *Queries) DeleteRoute(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRoute, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteRoutesByFlightNumber = `-- name: DeleteRoutesByFlightNumber :exec
DELETE FROM flight_routes WHERE flight_number = $1
`

func (q *Queries) DeleteRoutesByFlightNumber(ctx context.Context, flightNumber string) error {
	_, err := q.db.ExecContext(ctx, deleteRoutesByFlightNumber, flightNumber)
	return err
}
