package teamdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// TeamDBImpl implements Repository against Postgres.
type TeamDBImpl struct{}

var _ Repository = TeamDBImpl{}

func (TeamDBImpl) CreateTeam(ctx context.Context, db bun.IDB, team *Team) error {
	if _, err := db.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert team %q: %w", team.Name, err)
	}
	return nil
}

func (TeamDBImpl) GetTeam(ctx context.Context, db bun.IDB, name string) (*Team, error) {
	return getTeam(ctx, db, name, false)
}

func (TeamDBImpl) GetTeamForUpdate(ctx context.Context, db bun.IDB, name string) (*Team, error) {
	return getTeam(ctx, db, name, true)
}

func getTeam(ctx context.Context, db bun.IDB, name string, forUpdate bool) (*Team, error) {
	var team Team
	q := db.NewSelect().Model(&team).Where("t.name = ?", name)
	if forUpdate {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch team %q: %w", name, err)
	}
	return &team, nil
}

func (TeamDBImpl) ListTeams(ctx context.Context, db bun.IDB) ([]Team, error) {
	var teams []Team
	if err := db.NewSelect().Model(&teams).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (TeamDBImpl) UpdateTeam(ctx context.Context, db bun.IDB, name string, team *Team) error {
	res, err := db.NewUpdate().Model(team).
		Column("name", "email", "phone").
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update team %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("team %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

func (TeamDBImpl) DeleteTeam(ctx context.Context, db bun.IDB, name string) error {
	res, err := db.NewDelete().Model((*Team)(nil)).Where("name = ?", name).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete team %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("team %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

func (TeamDBImpl) AssignRoute(ctx context.Context, db bun.IDB, teamName string, routeName *string) error {
	res, err := db.NewUpdate().Model((*Team)(nil)).
		Set("route_name = ?", routeName).
		Where("name = ?", teamName).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to assign route to team %q: %w", teamName, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("team %q: %w", teamName, apperrors.ErrNotFound)
	}
	return nil
}

func (TeamDBImpl) StampEffectiveStart(ctx context.Context, db bun.IDB, teamName string, t time.Time) error {
	_, err := db.NewUpdate().Model((*Team)(nil)).
		Set("effective_start_time = ?", t).
		Where("name = ?", teamName).
		Where("effective_start_time IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to stamp effective start for team %q: %w", teamName, err)
	}
	return nil
}

func (TeamDBImpl) StampFinish(ctx context.Context, db bun.IDB, teamName string, t time.Time) error {
	_, err := db.NewUpdate().Model((*Team)(nil)).
		Set("finish_time = ?", t).
		Where("name = ?", teamName).
		Where("finish_time IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to stamp finish for team %q: %w", teamName, err)
	}
	return nil
}
