package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// UserDBImpl implements Repository against Postgres.
type UserDBImpl struct{}

var _ Repository = UserDBImpl{}

func (UserDBImpl) CreateUser(ctx context.Context, db bun.IDB, user *User) error {
	if _, err := db.NewInsert().Model(user).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert user %q: %w", user.Name, err)
	}
	return nil
}

func (UserDBImpl) GetUser(ctx context.Context, db bun.IDB, name string) (*User, error) {
	var user User
	err := db.NewSelect().Model(&user).Where("u.name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user %q: %w", name, err)
	}
	return &user, nil
}

func (UserDBImpl) ListUsers(ctx context.Context, db bun.IDB) ([]User, error) {
	var users []User
	if err := db.NewSelect().Model(&users).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (UserDBImpl) DeleteUser(ctx context.Context, db bun.IDB, name string) error {
	res, err := db.NewDelete().Model((*User)(nil)).Where("name = ?", name).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

func (UserDBImpl) SetRoles(ctx context.Context, db bun.IDB, name string, roles []string) error {
	res, err := db.NewUpdate().Model((*User)(nil)).
		Set("roles = ?", pgdialect.Array(roles)).
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set roles for user %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

func (UserDBImpl) AssignStation(ctx context.Context, db bun.IDB, userName, stationName string) error {
	assignment := UserStation{UserName: userName, StationName: stationName}
	_, err := db.NewInsert().Model(&assignment).
		On("CONFLICT (user_name, station_name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to assign station %q to user %q: %w", stationName, userName, err)
	}
	return nil
}

func (UserDBImpl) UnassignStation(ctx context.Context, db bun.IDB, userName, stationName string) error {
	_, err := db.NewDelete().Model((*UserStation)(nil)).
		Where("user_name = ?", userName).
		Where("station_name = ?", stationName).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to unassign station %q from user %q: %w", stationName, userName, err)
	}
	return nil
}

func (UserDBImpl) StationsForUser(ctx context.Context, db bun.IDB, userName string) ([]string, error) {
	var stations []string
	err := db.NewSelect().Model((*UserStation)(nil)).
		Column("station_name").
		Where("user_name = ?", userName).
		Order("station_name ASC").
		Scan(ctx, &stations)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations for user %q: %w", userName, err)
	}
	return stations, nil
}
