package routes

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/handlers"
	"github.com/sangkips/flight-notify-service/internal/render"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) fromRequest(req RouteRequest) (FlightRoute, error) {
	number := render.NormalizeFlightNumber(req.FlightNumber)
	if number == "" {
		return FlightRoute{}, handlers.NewValidationError(fmt.Errorf("invalid flight number %q", req.FlightNumber),
			handlers.FieldError{Field: "flightNumber", Error: "must be a flight number such as LY001 or 1"})
	}
	airline, ok := NormalizeAirline(req.Airline)
	if !ok {
		return FlightRoute{}, handlers.NewValidationError(fmt.Errorf("unknown airline %q", req.Airline),
			handlers.FieldError{Field: "airline", Error: "must be one of: ELAL Sundor"})
	}
	return FlightRoute{
		FlightNumber:         number,
		DepartureCity:        strings.ToUpper(strings.TrimSpace(req.DepartureCity)),
		DepartureCityHebrew:  strings.TrimSpace(req.DepartureCityHebrew),
		DepartureCityEnglish: strings.TrimSpace(req.DepartureCityEnglish),
		ArrivalCity:          strings.ToUpper(strings.TrimSpace(req.ArrivalCity)),
		ArrivalCityHebrew:    strings.TrimSpace(req.ArrivalCityHebrew),
		ArrivalCityEnglish:   strings.TrimSpace(req.ArrivalCityEnglish),
		Airline:              airline,
	}, nil
}

func (s *Service) Create(ctx context.Context, req RouteRequest) (FlightRoute, error) {
	route, err := s.fromRequest(req)
	if err != nil {
		return FlightRoute{}, err
	}
	now := s.now().UTC()
	route.ID = uuid.New().String()
	route.CreatedAt = now
	route.UpdatedAt = now
	return s.repo.CreateRoute(ctx, route)
}

func (s *Service) Get(ctx context.Context, id string) (FlightRoute, error) {
	return s.repo.GetRoute(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]FlightRoute, error) {
	return s.repo.ListRoutes(ctx)
}

func (s *Service) Update(ctx context.Context, id string, req RouteRequest) (FlightRoute, error) {
	current, err := s.repo.GetRoute(ctx, id)
	if err != nil {
		return FlightRoute{}, err
	}
	route, err := s.fromRequest(req)
	if err != nil {
		return FlightRoute{}, err
	}
	route.ID = current.ID
	route.CreatedAt = current.CreatedAt
	route.UpdatedAt = s.now().UTC()
	return s.repo.UpdateRoute(ctx, route)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteRoute(ctx, id)
}

// Lookup finds the route for a flight number in any accepted spelling
// ("LY001", "001", "1").
func (s *Service) Lookup(ctx context.Context, flightNumber string) (FlightRoute, error) {
	number := render.NormalizeFlightNumber(flightNumber)
	if number == "" {
		return FlightRoute{}, ErrRouteNotFound
	}
	return s.repo.GetRouteByFlightNumber(ctx, number)
}

// Import parses the whole upload and then writes it in one transaction.
func (s *Service) Import(ctx context.Context, filename string, r io.Reader) (ImportResult, error) {
	list, err := ParseRouteFile(filename, r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	list = dedupeRoutes(list)

	now := s.now().UTC()
	for i := range list {
		list[i].ID = uuid.New().String()
		list[i].CreatedAt = now
		list[i].UpdatedAt = now
	}

	if err := s.repo.ReplaceRoutes(ctx, list); err != nil {
		return ImportResult{}, err
	}

	log.Info().Str("file", filename).Int("routes", len(list)).Msg("Imported flight routes")
	return ImportResult{Imported: len(list)}, nil
}

// dedupeRoutes keeps one route per flight number. A later row replaces an
// earlier one but keeps its position.
func dedupeRoutes(list []FlightRoute) []FlightRoute {
	index := make(map[string]int, len(list))
	out := make([]FlightRoute, 0, len(list))
	for _, r := range list {
		if i, ok := index[r.FlightNumber]; ok {
			out[i] = r
			continue
		}
		index[r.FlightNumber] = len(out)
		out = append(out, r)
	}
	return out
}
