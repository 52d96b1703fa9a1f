package progressionservice

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// FakeStateRepository is an in-memory progressiondb.Repository.
type FakeStateRepository struct {
	trace []string
	Rows  map[string]*progressiondb.TeamStationState
}

func NewFakeStateRepository() *FakeStateRepository {
	return &FakeStateRepository{Rows: make(map[string]*progressiondb.TeamStationState)}
}

func key(teamName, stationName string) string { return teamName + "/" + stationName }

func (f *FakeStateRepository) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeStateRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStateRepository) EnsureRow(ctx context.Context, db bun.IDB, teamName, stationName string) error {
	f.record("EnsureRow")
	k := key(teamName, stationName)
	if _, ok := f.Rows[k]; !ok {
		f.Rows[k] = &progressiondb.TeamStationState{
			TeamName:    teamName,
			StationName: stationName,
			State:       progressiondb.StateUnknown,
		}
	}
	return nil
}

func (f *FakeStateRepository) GetForUpdate(ctx context.Context, db bun.IDB, teamName, stationName string) (*progressiondb.TeamStationState, error) {
	f.record("GetForUpdate")
	row, ok := f.Rows[key(teamName, stationName)]
	if !ok {
		return nil, fmt.Errorf("state row (%s, %s): %w", teamName, stationName, apperrors.ErrNotFound)
	}
	copied := *row
	return &copied, nil
}

func (f *FakeStateRepository) SetState(ctx context.Context, db bun.IDB, teamName, stationName string, state progressiondb.State, updated time.Time) error {
	f.record("SetState")
	row, ok := f.Rows[key(teamName, stationName)]
	if !ok {
		return fmt.Errorf("state row (%s, %s): %w", teamName, stationName, apperrors.ErrNotFound)
	}
	row.State = state
	row.Updated = updated
	return nil
}

func (f *FakeStateRepository) SetScore(ctx context.Context, db bun.IDB, teamName, stationName string, score int, updated time.Time) error {
	f.record("SetScore")
	row, ok := f.Rows[key(teamName, stationName)]
	if !ok {
		return fmt.Errorf("state row (%s, %s): %w", teamName, stationName, apperrors.ErrNotFound)
	}
	value := score
	row.Score = &value
	row.Updated = updated
	return nil
}

func (f *FakeStateRepository) ListStates(ctx context.Context, db bun.IDB) ([]progressiondb.TeamStationState, error) {
	f.record("ListStates")
	var out []progressiondb.TeamStationState
	for _, row := range f.Rows {
		out = append(out, *row)
	}
	return out, nil
}

// FakeTeamStore is an in-memory TeamStore.
type FakeTeamStore struct {
	Teams map[string]*teamdb.Team
}

func NewFakeTeamStore(teams ...*teamdb.Team) *FakeTeamStore {
	store := &FakeTeamStore{Teams: make(map[string]*teamdb.Team)}
	for _, team := range teams {
		store.Teams[team.Name] = team
	}
	return store
}

func (f *FakeTeamStore) GetTeamForUpdate(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error) {
	team, ok := f.Teams[name]
	if !ok {
		return nil, fmt.Errorf("team %q: %w", name, apperrors.ErrNotFound)
	}
	copied := *team
	return &copied, nil
}

func (f *FakeTeamStore) StampEffectiveStart(ctx context.Context, db bun.IDB, teamName string, t time.Time) error {
	if team, ok := f.Teams[teamName]; ok && team.EffectiveStartTime == nil {
		stamp := t
		team.EffectiveStartTime = &stamp
	}
	return nil
}

func (f *FakeTeamStore) StampFinish(ctx context.Context, db bun.IDB, teamName string, t time.Time) error {
	if team, ok := f.Teams[teamName]; ok && team.FinishTime == nil {
		stamp := t
		team.FinishTime = &stamp
	}
	return nil
}

// FakeStationStore is an in-memory StationStore.
type FakeStationStore struct {
	Stations map[string]*stationdb.Station
}

func NewFakeStationStore(stations ...*stationdb.Station) *FakeStationStore {
	store := &FakeStationStore{Stations: make(map[string]*stationdb.Station)}
	for _, station := range stations {
		store.Stations[station.Name] = station
	}
	return store
}

func (f *FakeStationStore) GetStation(ctx context.Context, db bun.IDB, name string) (*stationdb.Station, error) {
	station, ok := f.Stations[name]
	if !ok {
		return nil, fmt.Errorf("station %q: %w", name, apperrors.ErrNotFound)
	}
	copied := *station
	return &copied, nil
}
