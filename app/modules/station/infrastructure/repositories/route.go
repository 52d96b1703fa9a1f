package stationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

func (StationDBImpl) CreateRoute(ctx context.Context, db bun.IDB, route *Route) error {
	if _, err := db.NewInsert().Model(route).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert route %q: %w", route.Name, err)
	}
	return nil
}

func (StationDBImpl) GetRoute(ctx context.Context, db bun.IDB, name string) (*Route, error) {
	var route Route
	err := db.NewSelect().Model(&route).Where("r.name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("route %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch route %q: %w", name, err)
	}
	return &route, nil
}

func (StationDBImpl) ListRoutes(ctx context.Context, db bun.IDB) ([]Route, error) {
	var routes []Route
	if err := db.NewSelect().Model(&routes).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

func (StationDBImpl) UpdateRoute(ctx context.Context, db bun.IDB, name string, route *Route) error {
	res, err := db.NewUpdate().Model(route).
		Column("name", "color").
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update route %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("route %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

func (StationDBImpl) DeleteRoute(ctx context.Context, db bun.IDB, name string) error {
	res, err := db.NewDelete().Model((*Route)(nil)).Where("name = ?", name).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete route %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("route %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

func (StationDBImpl) AssignStationToRoute(ctx context.Context, db bun.IDB, routeName, stationName string) error {
	link := RouteStation{RouteName: routeName, StationName: stationName}
	_, err := db.NewInsert().Model(&link).
		On("CONFLICT (route_name, station_name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to assign station %q to route %q: %w", stationName, routeName, err)
	}
	return nil
}

func (StationDBImpl) UnassignStationFromRoute(ctx context.Context, db bun.IDB, routeName, stationName string) error {
	_, err := db.NewDelete().Model((*RouteStation)(nil)).
		Where("route_name = ?", routeName).
		Where("station_name = ?", stationName).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to unassign station %q from route %q: %w", stationName, routeName, err)
	}
	return nil
}

func (StationDBImpl) StationsForRoute(ctx context.Context, db bun.IDB, routeName string) ([]Station, error) {
	var stations []Station
	err := db.NewSelect().Model(&stations).
		Join("JOIN route_stations AS rs ON rs.station_name = s.name").
		Where("rs.route_name = ?", routeName).
		Order("s.ord ASC", "s.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations for route %q: %w", routeName, err)
	}
	return stations, nil
}

func (StationDBImpl) RouteAssignments(ctx context.Context, db bun.IDB) ([]RouteStation, error) {
	var links []RouteStation
	if err := db.NewSelect().Model(&links).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list route assignments: %w", err)
	}
	return links, nil
}
