package docstore

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/sangkips/flight-notify-service/internal/domains/routes"
)

type RouteRepository struct {
	client *firestore.Client
}

func NewRouteRepository(client *firestore.Client) *RouteRepository {
	return &RouteRepository{client: client}
}

var _ routes.Repository = (*RouteRepository)(nil)

func (r *RouteRepository) col() *firestore.CollectionRef {
	return r.client.Collection(routesCollection)
}

func routeFromSnapshot(snap *firestore.DocumentSnapshot) (routes.FlightRoute, error) {
	var route routes.FlightRoute
	if err := snap.DataTo(&route); err != nil {
		return routes.FlightRoute{}, err
	}
	route.ID = snap.Ref.ID
	return route, nil
}

func routesFromSnapshots(snaps []*firestore.DocumentSnapshot) ([]routes.FlightRoute, error) {
	list := make([]routes.FlightRoute, 0, len(snaps))
	for _, snap := range snaps {
		route, err := routeFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		list = append(list, route)
	}
	return list, nil
}

func (r *RouteRepository) CreateRoute(ctx context.Context, route routes.FlightRoute) (routes.FlightRoute, error) {
	if _, err := r.col().Doc(route.ID).Create(ctx, route); err != nil {
		return routes.FlightRoute{}, err
	}
	return route, nil
}

func (r *RouteRepository) GetRoute(ctx context.Context, id string) (routes.FlightRoute, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return routes.FlightRoute{}, routes.ErrRouteNotFound
		}
		return routes.FlightRoute{}, err
	}
	return routeFromSnapshot(snap)
}

// GetRouteByFlightNumber returns the most recently updated route for the
// flight. The newest is picked here to avoid a composite index.
func (r *RouteRepository) GetRouteByFlightNumber(ctx context.Context, flightNumber string) (routes.FlightRoute, error) {
	snaps, err := r.col().Where("flightNumber", "==", flightNumber).Documents(ctx).GetAll()
	if err != nil {
		return routes.FlightRoute{}, err
	}
	list, err := routesFromSnapshots(snaps)
	if err != nil {
		return routes.FlightRoute{}, err
	}
	if len(list) == 0 {
		return routes.FlightRoute{}, routes.ErrRouteNotFound
	}

	latest := list[0]
	for _, route := range list[1:] {
		if route.UpdatedAt.After(latest.UpdatedAt) {
			latest = route
		}
	}
	return latest, nil
}

func (r *RouteRepository) ListRoutes(ctx context.Context) ([]routes.FlightRoute, error) {
	snaps, err := r.col().OrderBy("flightNumber", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return routesFromSnapshots(snaps)
}

func (r *RouteRepository) UpdateRoute(ctx context.Context, route routes.FlightRoute) (routes.FlightRoute, error) {
	if err := replaceExisting(ctx, r.client, r.col().Doc(route.ID), route); err != nil {
		if isNotFound(err) {
			return routes.FlightRoute{}, routes.ErrRouteNotFound
		}
		return routes.FlightRoute{}, err
	}
	return route, nil
}

func (r *RouteRepository) DeleteRoute(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return routes.ErrRouteNotFound
		}
		return err
	}
	return nil
}

// ReplaceRoutes runs in one transaction. Firestore requires every read
// before the first write, so all matching routes are collected up front.
func (r *RouteRepository) ReplaceRoutes(ctx context.Context, list []routes.FlightRoute) error {
	numbers := make(map[string]struct{}, len(list))
	for _, route := range list {
		numbers[route.FlightNumber] = struct{}{}
	}

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var stale []*firestore.DocumentRef
		for number := range numbers {
			snaps, err := tx.Documents(r.col().Where("flightNumber", "==", number)).GetAll()
			if err != nil {
				return err
			}
			for _, snap := range snaps {
				stale = append(stale, snap.Ref)
			}
		}

		for _, ref := range stale {
			if err := tx.Delete(ref); err != nil {
				return err
			}
		}
		for _, route := range list {
			if err := tx.Create(r.col().Doc(route.ID), route); err != nil {
				return err
			}
		}
		return nil
	})
}
