package teamservice

import (
	"context"

	"github.com/uptrace/bun"

	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/observability"
)

const module = "team"

// Service is the team roster surface. Read operations are open; contact
// fields are redacted unless the caller holds view_team_contact.
type Service interface {
	ListTeams(ctx context.Context, caller authservice.Caller) ([]teamdb.Team, error)
	GetTeam(ctx context.Context, caller authservice.Caller, name string) (*teamdb.Team, error)
	CreateTeam(ctx context.Context, caller authservice.Caller, team *teamdb.Team) error
	UpdateTeam(ctx context.Context, caller authservice.Caller, name string, team *teamdb.Team) error
	DeleteTeam(ctx context.Context, caller authservice.Caller, name string) error
	AssignRoute(ctx context.Context, caller authservice.Caller, teamName string, routeName *string) error
}

// TeamService implements Service.
type TeamService struct {
	db   *bun.DB
	repo teamdb.Repository
	obs  observability.Observer
}

var _ Service = (*TeamService)(nil)

func NewTeamService(db *bun.DB, repo teamdb.Repository, obs observability.Observer) *TeamService {
	return &TeamService{db: db, repo: repo, obs: obs}
}

// redact strips contact fields for callers without view_team_contact.
func redact(team *teamdb.Team, caller authservice.Caller) {
	if caller.HasPermission(authservice.PermViewTeamContact) {
		return
	}
	team.Email = ""
	team.Phone = ""
}

func (s *TeamService) ListTeams(ctx context.Context, caller authservice.Caller) ([]teamdb.Team, error) {
	return observability.Observe(ctx, s.obs, module, "ListTeams", func(ctx context.Context) ([]teamdb.Team, error) {
		teams, err := s.repo.ListTeams(ctx, s.db)
		if err != nil {
			return nil, err
		}
		for i := range teams {
			redact(&teams[i], caller)
		}
		return teams, nil
	})
}

func (s *TeamService) GetTeam(ctx context.Context, caller authservice.Caller, name string) (*teamdb.Team, error) {
	return observability.Observe(ctx, s.obs, module, "GetTeam", func(ctx context.Context) (*teamdb.Team, error) {
		team, err := s.repo.GetTeam(ctx, s.db, name)
		if err != nil {
			return nil, err
		}
		redact(team, caller)
		return team, nil
	})
}

func (s *TeamService) CreateTeam(ctx context.Context, caller authservice.Caller, team *teamdb.Team) error {
	_, err := observability.Observe(ctx, s.obs, module, "CreateTeam", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminTeams); err != nil {
			return struct{}{}, err
		}
		if team.Name == "" {
			return struct{}{}, apperrors.NewValidation("team name must not be empty")
		}
		return struct{}{}, s.repo.CreateTeam(ctx, s.db, team)
	})
	return err
}

func (s *TeamService) UpdateTeam(ctx context.Context, caller authservice.Caller, name string, team *teamdb.Team) error {
	_, err := observability.Observe(ctx, s.obs, module, "UpdateTeam", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminTeams); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.UpdateTeam(ctx, s.db, name, team)
	})
	return err
}

func (s *TeamService) DeleteTeam(ctx context.Context, caller authservice.Caller, name string) error {
	_, err := observability.Observe(ctx, s.obs, module, "DeleteTeam", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminTeams); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.DeleteTeam(ctx, s.db, name)
	})
	return err
}

func (s *TeamService) AssignRoute(ctx context.Context, caller authservice.Caller, teamName string, routeName *string) error {
	_, err := observability.Observe(ctx, s.obs, module, "AssignRoute", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminTeams); err != nil {
			return struct{}{}, err
		}
		if _, err := s.repo.GetTeam(ctx, s.db, teamName); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.AssignRoute(ctx, s.db, teamName, routeName)
	})
	return err
}
