package teamdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository is the persistence interface for teams.
type Repository interface {
	CreateTeam(ctx context.Context, db bun.IDB, team *Team) error
	GetTeam(ctx context.Context, db bun.IDB, name string) (*Team, error)
	// GetTeamForUpdate locks the team row for the duration of the enclosing
	// transaction.
	GetTeamForUpdate(ctx context.Context, db bun.IDB, name string) (*Team, error)
	ListTeams(ctx context.Context, db bun.IDB) ([]Team, error)
	UpdateTeam(ctx context.Context, db bun.IDB, name string, team *Team) error
	DeleteTeam(ctx context.Context, db bun.IDB, name string) error

	AssignRoute(ctx context.Context, db bun.IDB, teamName string, routeName *string) error

	// StampEffectiveStart and StampFinish set their timestamp only when it is
	// still unset; stamping an already-stamped team is a no-op.
	StampEffectiveStart(ctx context.Context, db bun.IDB, teamName string, t time.Time) error
	StampFinish(ctx context.Context, db bun.IDB, teamName string, t time.Time) error
}
