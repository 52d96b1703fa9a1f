package stationservice

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// FakeStationRepository is a programmable stub for stationdb.Repository.
// Stations acts as the backing store for the lookup methods unless a Func
// field overrides the behavior.
type FakeStationRepository struct {
	trace []string

	Stations []stationdb.Station
	Routes   []stationdb.Route
	Links    []stationdb.RouteStation

	GetStationFunc       func(ctx context.Context, db bun.IDB, name string) (*stationdb.Station, error)
	ListStationsFunc     func(ctx context.Context, db bun.IDB) ([]stationdb.Station, error)
	StationsForRouteFunc func(ctx context.Context, db bun.IDB, routeName string) ([]stationdb.Station, error)
}

func (f *FakeStationRepository) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeStationRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStationRepository) CreateStation(ctx context.Context, db bun.IDB, station *stationdb.Station) error {
	f.record("CreateStation")
	f.Stations = append(f.Stations, *station)
	return nil
}

func (f *FakeStationRepository) GetStation(ctx context.Context, db bun.IDB, name string) (*stationdb.Station, error) {
	f.record("GetStation")
	if f.GetStationFunc != nil {
		return f.GetStationFunc(ctx, db, name)
	}
	for i := range f.Stations {
		if f.Stations[i].Name == name {
			return &f.Stations[i], nil
		}
	}
	return nil, fmt.Errorf("station %q: %w", name, apperrors.ErrNotFound)
}

func (f *FakeStationRepository) ListStations(ctx context.Context, db bun.IDB) ([]stationdb.Station, error) {
	f.record("ListStations")
	if f.ListStationsFunc != nil {
		return f.ListStationsFunc(ctx, db)
	}
	return f.Stations, nil
}

func (f *FakeStationRepository) UpdateStation(ctx context.Context, db bun.IDB, name string, station *stationdb.Station) error {
	f.record("UpdateStation")
	return nil
}

func (f *FakeStationRepository) DeleteStation(ctx context.Context, db bun.IDB, name string) error {
	f.record("DeleteStation")
	return nil
}

func (f *FakeStationRepository) CreateRoute(ctx context.Context, db bun.IDB, route *stationdb.Route) error {
	f.record("CreateRoute")
	f.Routes = append(f.Routes, *route)
	return nil
}

func (f *FakeStationRepository) GetRoute(ctx context.Context, db bun.IDB, name string) (*stationdb.Route, error) {
	f.record("GetRoute")
	for i := range f.Routes {
		if f.Routes[i].Name == name {
			return &f.Routes[i], nil
		}
	}
	return nil, fmt.Errorf("route %q: %w", name, apperrors.ErrNotFound)
}

func (f *FakeStationRepository) ListRoutes(ctx context.Context, db bun.IDB) ([]stationdb.Route, error) {
	f.record("ListRoutes")
	return f.Routes, nil
}

func (f *FakeStationRepository) UpdateRoute(ctx context.Context, db bun.IDB, name string, route *stationdb.Route) error {
	f.record("UpdateRoute")
	return nil
}

func (f *FakeStationRepository) DeleteRoute(ctx context.Context, db bun.IDB, name string) error {
	f.record("DeleteRoute")
	return nil
}

func (f *FakeStationRepository) AssignStationToRoute(ctx context.Context, db bun.IDB, routeName, stationName string) error {
	f.record("AssignStationToRoute")
	f.Links = append(f.Links, stationdb.RouteStation{RouteName: routeName, StationName: stationName})
	return nil
}

func (f *FakeStationRepository) UnassignStationFromRoute(ctx context.Context, db bun.IDB, routeName, stationName string) error {
	f.record("UnassignStationFromRoute")
	return nil
}

func (f *FakeStationRepository) StationsForRoute(ctx context.Context, db bun.IDB, routeName string) ([]stationdb.Station, error) {
	f.record("StationsForRoute")
	if f.StationsForRouteFunc != nil {
		return f.StationsForRouteFunc(ctx, db, routeName)
	}
	var out []stationdb.Station
	for _, link := range f.Links {
		if link.RouteName != routeName {
			continue
		}
		for _, st := range f.Stations {
			if st.Name == link.StationName {
				out = append(out, st)
			}
		}
	}
	return out, nil
}

func (f *FakeStationRepository) RouteAssignments(ctx context.Context, db bun.IDB) ([]stationdb.RouteStation, error) {
	f.record("RouteAssignments")
	return f.Links, nil
}

// FakeTeamRepository is a programmable stub for teamdb.Repository.
type FakeTeamRepository struct {
	Teams []teamdb.Team

	GetTeamFunc func(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error)
}

func (f *FakeTeamRepository) CreateTeam(ctx context.Context, db bun.IDB, team *teamdb.Team) error {
	f.Teams = append(f.Teams, *team)
	return nil
}

func (f *FakeTeamRepository) GetTeam(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error) {
	if f.GetTeamFunc != nil {
		return f.GetTeamFunc(ctx, db, name)
	}
	for i := range f.Teams {
		if f.Teams[i].Name == name {
			return &f.Teams[i], nil
		}
	}
	return nil, fmt.Errorf("team %q: %w", name, apperrors.ErrNotFound)
}

func (f *FakeTeamRepository) GetTeamForUpdate(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error) {
	return f.GetTeam(ctx, db, name)
}

func (f *FakeTeamRepository) ListTeams(ctx context.Context, db bun.IDB) ([]teamdb.Team, error) {
	return f.Teams, nil
}

func (f *FakeTeamRepository) UpdateTeam(ctx context.Context, db bun.IDB, name string, team *teamdb.Team) error {
	return nil
}

func (f *FakeTeamRepository) DeleteTeam(ctx context.Context, db bun.IDB, name string) error {
	return nil
}

func (f *FakeTeamRepository) AssignRoute(ctx context.Context, db bun.IDB, teamName string, routeName *string) error {
	for i := range f.Teams {
		if f.Teams[i].Name == teamName {
			f.Teams[i].RouteName = routeName
		}
	}
	return nil
}

func (f *FakeTeamRepository) StampEffectiveStart(ctx context.Context, db bun.IDB, teamName string, t time.Time) error {
	for i := range f.Teams {
		if f.Teams[i].Name == teamName && f.Teams[i].EffectiveStartTime == nil {
			stamp := t
			f.Teams[i].EffectiveStartTime = &stamp
		}
	}
	return nil
}

func (f *FakeTeamRepository) StampFinish(ctx context.Context, db bun.IDB, teamName string, t time.Time) error {
	for i := range f.Teams {
		if f.Teams[i].Name == teamName && f.Teams[i].FinishTime == nil {
			stamp := t
			f.Teams[i].FinishTime = &stamp
		}
	}
	return nil
}
