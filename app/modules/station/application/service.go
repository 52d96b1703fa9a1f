package stationservice

import (
	"context"

	"github.com/uptrace/bun"

	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/observability"
)

const module = "station"

// Service is the station and route surface: topology queries plus
// administrative CRUD.
type Service interface {
	Related(ctx context.Context, stationName, relation string) (string, error)
	ReachableStations(ctx context.Context, teamName string) ([]stationdb.Station, error)

	ListStations(ctx context.Context) ([]stationdb.Station, error)
	CreateStation(ctx context.Context, caller authservice.Caller, station *stationdb.Station) error
	UpdateStation(ctx context.Context, caller authservice.Caller, name string, station *stationdb.Station) error
	DeleteStation(ctx context.Context, caller authservice.Caller, name string) error

	ListRoutes(ctx context.Context) ([]stationdb.Route, error)
	CreateRoute(ctx context.Context, caller authservice.Caller, route *stationdb.Route) error
	UpdateRoute(ctx context.Context, caller authservice.Caller, name string, route *stationdb.Route) error
	DeleteRoute(ctx context.Context, caller authservice.Caller, name string) error
	AssignStationToRoute(ctx context.Context, caller authservice.Caller, routeName, stationName string) error
	UnassignStationFromRoute(ctx context.Context, caller authservice.Caller, routeName, stationName string) error
}

// StationService implements Service.
type StationService struct {
	db    *bun.DB
	repo  stationdb.Repository
	teams teamdb.Repository
	obs   observability.Observer
}

var _ Service = (*StationService)(nil)

func NewStationService(db *bun.DB, repo stationdb.Repository, teams teamdb.Repository, obs observability.Observer) *StationService {
	return &StationService{db: db, repo: repo, teams: teams, obs: obs}
}

func (s *StationService) ListStations(ctx context.Context) ([]stationdb.Station, error) {
	return observability.Observe(ctx, s.obs, module, "ListStations", func(ctx context.Context) ([]stationdb.Station, error) {
		return s.repo.ListStations(ctx, s.db)
	})
}

func (s *StationService) CreateStation(ctx context.Context, caller authservice.Caller, station *stationdb.Station) error {
	_, err := observability.Observe(ctx, s.obs, module, "CreateStation", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminStations); err != nil {
			return struct{}{}, err
		}
		if station.Name == "" {
			return struct{}{}, apperrors.NewValidation("station name must not be empty")
		}
		return struct{}{}, s.repo.CreateStation(ctx, s.db, station)
	})
	return err
}

func (s *StationService) UpdateStation(ctx context.Context, caller authservice.Caller, name string, station *stationdb.Station) error {
	_, err := observability.Observe(ctx, s.obs, module, "UpdateStation", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminStations); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.UpdateStation(ctx, s.db, name, station)
	})
	return err
}

func (s *StationService) DeleteStation(ctx context.Context, caller authservice.Caller, name string) error {
	_, err := observability.Observe(ctx, s.obs, module, "DeleteStation", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminStations); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.DeleteStation(ctx, s.db, name)
	})
	return err
}

func (s *StationService) ListRoutes(ctx context.Context) ([]stationdb.Route, error) {
	return observability.Observe(ctx, s.obs, module, "ListRoutes", func(ctx context.Context) ([]stationdb.Route, error) {
		return s.repo.ListRoutes(ctx, s.db)
	})
}

func (s *StationService) CreateRoute(ctx context.Context, caller authservice.Caller, route *stationdb.Route) error {
	_, err := observability.Observe(ctx, s.obs, module, "CreateRoute", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminRoutes); err != nil {
			return struct{}{}, err
		}
		if route.Name == "" {
			return struct{}{}, apperrors.NewValidation("route name must not be empty")
		}
		return struct{}{}, s.repo.CreateRoute(ctx, s.db, route)
	})
	return err
}

func (s *StationService) UpdateRoute(ctx context.Context, caller authservice.Caller, name string, route *stationdb.Route) error {
	_, err := observability.Observe(ctx, s.obs, module, "UpdateRoute", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminRoutes); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.UpdateRoute(ctx, s.db, name, route)
	})
	return err
}

func (s *StationService) DeleteRoute(ctx context.Context, caller authservice.Caller, name string) error {
	_, err := observability.Observe(ctx, s.obs, module, "DeleteRoute", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminRoutes); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.DeleteRoute(ctx, s.db, name)
	})
	return err
}

func (s *StationService) AssignStationToRoute(ctx context.Context, caller authservice.Caller, routeName, stationName string) error {
	_, err := observability.Observe(ctx, s.obs, module, "AssignStationToRoute", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminRoutes); err != nil {
			return struct{}{}, err
		}
		if _, err := s.repo.GetRoute(ctx, s.db, routeName); err != nil {
			return struct{}{}, err
		}
		if _, err := s.repo.GetStation(ctx, s.db, stationName); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.AssignStationToRoute(ctx, s.db, routeName, stationName)
	})
	return err
}

func (s *StationService) UnassignStationFromRoute(ctx context.Context, caller authservice.Caller, routeName, stationName string) error {
	_, err := observability.Observe(ctx, s.obs, module, "UnassignStationFromRoute", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminRoutes); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.UnassignStationFromRoute(ctx, s.db, routeName, stationName)
	})
	return err
}
