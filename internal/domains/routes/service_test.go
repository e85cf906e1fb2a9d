package routes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sangkips/flight-notify-service/internal/handlers"
)

type mockRepository struct {
	routes     map[string]FlightRoute
	replaced   [][]FlightRoute
	replaceErr error
}

func newMockRepository(list ...FlightRoute) *mockRepository {
	m := &mockRepository{routes: map[string]FlightRoute{}}
	for _, r := range list {
		m.routes[r.ID] = r
	}
	return m
}

func (m *mockRepository) CreateRoute(ctx context.Context, route FlightRoute) (FlightRoute, error) {
	m.routes[route.ID] = route
	return route, nil
}

func (m *mockRepository) GetRoute(ctx context.Context, id string) (FlightRoute, error) {
	r, ok := m.routes[id]
	if !ok {
		return FlightRoute{}, ErrRouteNotFound
	}
	return r, nil
}

func (m *mockRepository) GetRouteByFlightNumber(ctx context.Context, flightNumber string) (FlightRoute, error) {
	for _, r := range m.routes {
		if r.FlightNumber == flightNumber {
			return r, nil
		}
	}
	return FlightRoute{}, ErrRouteNotFound
}

func (m *mockRepository) ListRoutes(ctx context.Context) ([]FlightRoute, error) {
	var out []FlightRoute
	for _, r := range m.routes {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRepository) UpdateRoute(ctx context.Context, route FlightRoute) (FlightRoute, error) {
	if _, ok := m.routes[route.ID]; !ok {
		return FlightRoute{}, ErrRouteNotFound
	}
	m.routes[route.ID] = route
	return route, nil
}

func (m *mockRepository) DeleteRoute(ctx context.Context, id string) error {
	if _, ok := m.routes[id]; !ok {
		return ErrRouteNotFound
	}
	delete(m.routes, id)
	return nil
}

func (m *mockRepository) ReplaceRoutes(ctx context.Context, list []FlightRoute) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = append(m.replaced, list)
	for _, r := range list {
		m.routes[r.ID] = r
	}
	return nil
}

var _ Repository = (*mockRepository)(nil)

func TestService_Create_NormalizesInput(t *testing.T) {
	svc := NewService(newMockRepository())

	route, err := svc.Create(context.Background(), RouteRequest{
		FlightNumber:  "LY007",
		DepartureCity: " tlv ",
		ArrivalCity:   "jfk",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if route.FlightNumber != "7" {
		t.Errorf("Expected normalized flight number 7, got %s", route.FlightNumber)
	}
	if route.DepartureCity != "TLV" || route.ArrivalCity != "JFK" {
		t.Errorf("Expected upper-case codes, got %s/%s", route.DepartureCity, route.ArrivalCity)
	}
	if route.Airline != AirlineElAl {
		t.Errorf("Expected default airline ELAL, got %s", route.Airline)
	}
	if route.ID == "" {
		t.Error("Expected id to be assigned")
	}
}

func TestService_Create_InvalidFlightNumber(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), RouteRequest{FlightNumber: "abc-1", DepartureCity: "TLV", ArrivalCity: "JFK"})

	var verr *handlers.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if verr.Fields[0].Field != "flightNumber" {
		t.Errorf("Expected flightNumber field error, got %+v", verr.Fields)
	}
}

func TestService_Lookup_AcceptsAnySpelling(t *testing.T) {
	repo := newMockRepository(FlightRoute{ID: "r1", FlightNumber: "1", DepartureCity: "TLV", ArrivalCity: "JFK"})
	svc := NewService(repo)

	for _, in := range []string{"LY001", "001", "1", "ly1"} {
		route, err := svc.Lookup(context.Background(), in)
		if err != nil {
			t.Errorf("Lookup(%q): expected route, got %v", in, err)
			continue
		}
		if route.ID != "r1" {
			t.Errorf("Lookup(%q): expected r1, got %s", in, route.ID)
		}
	}

	if _, err := svc.Lookup(context.Background(), "LY002"); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("Expected ErrRouteNotFound, got %v", err)
	}
	if _, err := svc.Lookup(context.Background(), "garbage!"); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("Expected ErrRouteNotFound for invalid input, got %v", err)
	}
}

func TestService_Import_WritesAllRoutesOnce(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	result, err := svc.Import(context.Background(), "routes.csv", strings.NewReader("1,TLV,,,JFK,,,\n2,JFK,,,TLV,,,\n"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if len(repo.replaced) != 1 || len(repo.replaced[0]) != 2 {
		t.Fatalf("Expected one batch write of 2 routes, got %v", repo.replaced)
	}
	for _, r := range repo.replaced[0] {
		if r.ID == "" || r.CreatedAt.IsZero() {
			t.Errorf("Expected id and timestamps on imported route, got %+v", r)
		}
	}
}

func TestService_Import_RepeatedFlightNumberLastRowWins(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	in := "1,TLV,,,JFK,,,\n2,JFK,,,TLV,,,\nLY001,TLV,,,EWR,,,Sundor\n"
	result, err := svc.Import(context.Background(), "routes.csv", strings.NewReader(in))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if len(repo.replaced) != 1 || len(repo.replaced[0]) != 2 {
		t.Fatalf("Expected one batch write of 2 routes, got %v", repo.replaced)
	}
	first := repo.replaced[0][0]
	if first.ArrivalCity != "EWR" || first.Airline != "Sundor" {
		t.Errorf("Expected the later row for the repeated flight, got %+v", first)
	}
}

func TestService_Import_ParseErrorWritesNothing(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Import(context.Background(), "routes.csv", strings.NewReader("1,TLV,,,JFK,,,\nbad,TLV,,,JFK,,,\n"))
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("Expected ErrInvalidFile, got %v", err)
	}
	if len(repo.replaced) != 0 {
		t.Errorf("Expected no writes, got %d batches", len(repo.replaced))
	}
}
