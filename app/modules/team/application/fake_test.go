package teamservice

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// FakeTeamRepository is an in-memory teamdb.Repository.
type FakeTeamRepository struct {
	trace []string
	Teams map[string]*teamdb.Team
}

func NewFakeTeamRepository(teams ...*teamdb.Team) *FakeTeamRepository {
	repo := &FakeTeamRepository{Teams: make(map[string]*teamdb.Team)}
	for _, team := range teams {
		copied := *team
		repo.Teams[team.Name] = &copied
	}
	return repo
}

func (f *FakeTeamRepository) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeTeamRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTeamRepository) CreateTeam(ctx context.Context, db bun.IDB, team *teamdb.Team) error {
	f.record("CreateTeam")
	if _, ok := f.Teams[team.Name]; ok {
		return fmt.Errorf("team %q already exists", team.Name)
	}
	copied := *team
	f.Teams[team.Name] = &copied
	return nil
}

func (f *FakeTeamRepository) GetTeam(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error) {
	f.record("GetTeam")
	team, ok := f.Teams[name]
	if !ok {
		return nil, fmt.Errorf("team %q: %w", name, apperrors.ErrNotFound)
	}
	copied := *team
	return &copied, nil
}

func (f *FakeTeamRepository) GetTeamForUpdate(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error) {
	f.record("GetTeamForUpdate")
	return f.GetTeam(ctx, db, name)
}

func (f *FakeTeamRepository) ListTeams(ctx context.Context, db bun.IDB) ([]teamdb.Team, error) {
	f.record("ListTeams")
	var out []teamdb.Team
	for _, team := range f.Teams {
		out = append(out, *team)
	}
	return out, nil
}

func (f *FakeTeamRepository) UpdateTeam(ctx context.Context, db bun.IDB, name string, team *teamdb.Team) error {
	f.record("UpdateTeam")
	if _, ok := f.Teams[name]; !ok {
		return fmt.Errorf("team %q: %w", name, apperrors.ErrNotFound)
	}
	copied := *team
	delete(f.Teams, name)
	f.Teams[copied.Name] = &copied
	return nil
}

func (f *FakeTeamRepository) DeleteTeam(ctx context.Context, db bun.IDB, name string) error {
	f.record("DeleteTeam")
	delete(f.Teams, name)
	return nil
}

func (f *FakeTeamRepository) AssignRoute(ctx context.Context, db bun.IDB, teamName string, routeName *string) error {
	f.record("AssignRoute")
	team, ok := f.Teams[teamName]
	if !ok {
		return fmt.Errorf("team %q: %w", teamName, apperrors.ErrNotFound)
	}
	team.RouteName = routeName
	return nil
}

func (f *FakeTeamRepository) StampEffectiveStart(ctx context.Context, db bun.IDB, teamName string, t time.Time) error {
	f.record("StampEffectiveStart")
	if team, ok := f.Teams[teamName]; ok && team.EffectiveStartTime == nil {
		stamp := t
		team.EffectiveStartTime = &stamp
	}
	return nil
}

func (f *FakeTeamRepository) StampFinish(ctx context.Context, db bun.IDB, teamName string, t time.Time) error {
	f.record("StampFinish")
	if team, ok := f.Teams[teamName]; ok && team.FinishTime == nil {
		stamp := t
		team.FinishTime = &stamp
	}
	return nil
}
