package stationdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository is the persistence interface for stations, routes and their
// links.
type Repository interface {
	CreateStation(ctx context.Context, db bun.IDB, station *Station) error
	GetStation(ctx context.Context, db bun.IDB, name string) (*Station, error)
	ListStations(ctx context.Context, db bun.IDB) ([]Station, error)
	UpdateStation(ctx context.Context, db bun.IDB, name string, station *Station) error
	DeleteStation(ctx context.Context, db bun.IDB, name string) error

	CreateRoute(ctx context.Context, db bun.IDB, route *Route) error
	GetRoute(ctx context.Context, db bun.IDB, name string) (*Route, error)
	ListRoutes(ctx context.Context, db bun.IDB) ([]Route, error)
	UpdateRoute(ctx context.Context, db bun.IDB, name string, route *Route) error
	DeleteRoute(ctx context.Context, db bun.IDB, name string) error

	AssignStationToRoute(ctx context.Context, db bun.IDB, routeName, stationName string) error
	UnassignStationFromRoute(ctx context.Context, db bun.IDB, routeName, stationName string) error
	StationsForRoute(ctx context.Context, db bun.IDB, routeName string) ([]Station, error)
	RouteAssignments(ctx context.Context, db bun.IDB) ([]RouteStation, error)
}
