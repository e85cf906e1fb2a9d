package routes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sangkips/flight-notify-service/internal/domains/routes/models"
)

type Repository interface {
	CreateRoute(ctx context.Context, route FlightRoute) (FlightRoute, error)
	GetRoute(ctx context.Context, id string) (FlightRoute, error)
	GetRouteByFlightNumber(ctx context.Context, flightNumber string) (FlightRoute, error)
	ListRoutes(ctx context.Context) ([]FlightRoute, error)
	UpdateRoute(ctx context.Context, route FlightRoute) (FlightRoute, error)
	DeleteRoute(ctx context.Context, id string) error
	// ReplaceRoutes writes every route atomically, replacing stored routes
	// with the same flight number.
	ReplaceRoutes(ctx context.Context, list []FlightRoute) error
}

type repository struct {
	db *sql.DB
	q  *models.Queries
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db, q: models.New(db)}
}

func fromModel(m models.FlightRoute) FlightRoute {
	return FlightRoute{
		ID:                   m.ID.String(),
		FlightNumber:         m.FlightNumber,
		DepartureCity:        m.DepartureCity,
		DepartureCityHebrew:  m.DepartureCityHebrew,
		DepartureCityEnglish: m.DepartureCityEnglish,
		ArrivalCity:          m.ArrivalCity,
		ArrivalCityHebrew:    m.ArrivalCityHebrew,
		ArrivalCityEnglish:   m.ArrivalCityEnglish,
		Airline:              m.Airline,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func createParams(route FlightRoute) (models.CreateRouteParams, error) {
	id, err := uuid.Parse(route.ID)
	if err != nil {
		return models.CreateRouteParams{}, err
	}
	return models.CreateRouteParams{
		ID:                   id,
		FlightNumber:         route.FlightNumber,
		DepartureCity:        route.DepartureCity,
		DepartureCityHebrew:  route.DepartureCityHebrew,
		DepartureCityEnglish: route.DepartureCityEnglish,
		ArrivalCity:          route.ArrivalCity,
		ArrivalCityHebrew:    route.ArrivalCityHebrew,
		ArrivalCityEnglish:   route.ArrivalCityEnglish,
		Airline:              route.Airline,
		CreatedAt:            route.CreatedAt,
	}, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRouteNotFound
	}
	return err
}

func (r *repository) CreateRoute(ctx context.Context, route FlightRoute) (FlightRoute, error) {
	params, err := createParams(route)
	if err != nil {
		return FlightRoute{}, err
	}
	m, err := r.q.CreateRoute(ctx, params)
	if err != nil {
		return FlightRoute{}, err
	}
	return fromModel(m), nil
}

func (r *repository) GetRoute(ctx context.Context, id string) (FlightRoute, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return FlightRoute{}, ErrRouteNotFound
	}
	m, err := r.q.GetRoute(ctx, uid)
	if err != nil {
		return FlightRoute{}, notFound(err)
	}
	return fromModel(m), nil
}

func (r *repository) GetRouteByFlightNumber(ctx context.Context, flightNumber string) (FlightRoute, error) {
	m, err := r.q.GetRouteByFlightNumber(ctx, flightNumber)
	if err != nil {
		return FlightRoute{}, notFound(err)
	}
	return fromModel(m), nil
}

func (r *repository) ListRoutes(ctx context.Context) ([]FlightRoute, error) {
	rows, err := r.q.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FlightRoute, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromModel(m))
	}
	return out, nil
}

func (r *repository) UpdateRoute(ctx context.Context, route FlightRoute) (FlightRoute, error) {
	uid, err := uuid.Parse(route.ID)
	if err != nil {
		return FlightRoute{}, ErrRouteNotFound
	}
	m, err := r.q.UpdateRoute(ctx, models.UpdateRouteParams{
		ID:                   uid,
		FlightNumber:         route.FlightNumber,
		DepartureCity:        route.DepartureCity,
		DepartureCityHebrew:  route.DepartureCityHebrew,
		DepartureCityEnglish: route.DepartureCityEnglish,
		ArrivalCity:          route.ArrivalCity,
		ArrivalCityHebrew:    route.ArrivalCityHebrew,
		ArrivalCityEnglish:   route.ArrivalCityEnglish,
		Airline:              route.Airline,
		UpdatedAt:            route.UpdatedAt,
	})
	if err != nil {
		return FlightRoute{}, notFound(err)
	}
	return fromModel(m), nil
}

func (r *repository) DeleteRoute(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrRouteNotFound
	}
	n, err := r.q.DeleteRoute(ctx, uid)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRouteNotFound
	}
	return nil
}

func (r *repository) ReplaceRoutes(ctx context.Context, list []FlightRoute) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.q.WithTx(tx)
	for _, route := range list {
		if err := q.DeleteRoutesByFlightNumber(ctx, route.FlightNumber); err != nil {
			return fmt.Errorf("failed to replace route %s: %w", route.FlightNumber, err)
		}
		params, err := createParams(route)
		if err != nil {
			return err
		}
		if _, err := q.CreateRoute(ctx, params); err != nil {
			return fmt.Errorf("failed to insert route %s: %w", route.FlightNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}
