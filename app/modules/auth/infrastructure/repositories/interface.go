package userdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository is the persistence interface for users and their station
// assignments.
type Repository interface {
	CreateUser(ctx context.Context, db bun.IDB, user *User) error
	GetUser(ctx context.Context, db bun.IDB, name string) (*User, error)
	ListUsers(ctx context.Context, db bun.IDB) ([]User, error)
	DeleteUser(ctx context.Context, db bun.IDB, name string) error
	SetRoles(ctx context.Context, db bun.IDB, name string, roles []string) error

	AssignStation(ctx context.Context, db bun.IDB, userName, stationName string) error
	UnassignStation(ctx context.Context, db bun.IDB, userName, stationName string) error
	StationsForUser(ctx context.Context, db bun.IDB, userName string) ([]string, error)
}
