package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/domains/routes"
	"github.com/sangkips/flight-notify-service/internal/handlers"
	"github.com/sangkips/flight-notify-service/internal/render"
)

type RenderRequest struct {
	TemplateID     string            `json:"templateId"`
	Content        string            `json:"content"`
	EnglishContent string            `json:"englishContent"`
	Fields         map[string]string `json:"fields"`
	ConvertTimes   bool              `json:"convertTimes"`
}

type RenderResponse struct {
	Hebrew  string              `json:"hebrew"`
	English string              `json:"english"`
	Fields  []render.Field      `json:"fields"`
	Route   *routes.FlightRoute `json:"route,omitempty"`
}

// Render produces both language versions of a template. A stored route for
// the flight number fills missing city codes and supplies its own city
// names. With ConvertTimes, times are moved to the departure airport's zone.
func (s *Service) Render(ctx context.Context, req RenderRequest) (RenderResponse, error) {
	content, english := req.Content, req.EnglishContent
	if req.TemplateID != "" {
		if s.deps.Templates == nil {
			return RenderResponse{}, fmt.Errorf("%w: cannot load template %s", ErrTemplatesUnavailable, req.TemplateID)
		}
		t, err := s.deps.Templates.Get(ctx, req.TemplateID)
		if err != nil {
			return RenderResponse{}, err
		}
		if content == "" {
			content = t.Content
		}
		if english == "" {
			english = t.EnglishContent
		}
	}
	if strings.TrimSpace(content) == "" && strings.TrimSpace(english) == "" {
		return RenderResponse{}, handlers.NewValidationError(errors.New("nothing to render"),
			handlers.FieldError{Field: "content", Error: "a templateId or content is required"})
	}

	values := render.FromMap(req.Fields)
	renderer := s.deps.Renderer
	dir := s.deps.Directory

	var matched *routes.FlightRoute
	if route, ok := s.lookupRoute(ctx, values[render.FlightNumber]); ok {
		matched = &route
		if strings.TrimSpace(values[render.DepartureCity]) == "" {
			values[render.DepartureCity] = route.DepartureCity
		}
		if strings.TrimSpace(values[render.ArrivalCity]) == "" {
			values[render.ArrivalCity] = route.ArrivalCity
		}
		dir = dir.With(route.Airports()...)
		renderer = renderer.WithCities(dir)
	}

	if req.ConvertTimes && s.deps.Converter != nil {
		values = s.deps.Converter.ConvertValues(values)
	}

	out := renderer.RenderPair(content, english, values)
	return RenderResponse{
		Hebrew:  out.Hebrew,
		English: out.English,
		Fields:  render.FieldsIn(content, english),
		Route:   matched,
	}, nil
}

func (s *Service) lookupRoute(ctx context.Context, flightNumber string) (routes.FlightRoute, bool) {
	if s.deps.Routes == nil || strings.TrimSpace(flightNumber) == "" {
		return routes.FlightRoute{}, false
	}
	route, err := s.deps.Routes.Lookup(ctx, flightNumber)
	if err != nil {
		if !errors.Is(err, routes.ErrRouteNotFound) {
			log.Warn().Err(err).Str("flight_number", flightNumber).Msg("Route lookup failed, rendering without route")
		}
		return routes.FlightRoute{}, false
	}
	return route, true
}
