package progressiondb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository is the persistence interface for team-station progress rows.
type Repository interface {
	// EnsureRow creates the (team, station) row at state unknown when it does
	// not exist yet.
	EnsureRow(ctx context.Context, db bun.IDB, teamName, stationName string) error
	// GetForUpdate locks the row for the enclosing transaction. Two
	// concurrent Advance calls must not both read the same state.
	GetForUpdate(ctx context.Context, db bun.IDB, teamName, stationName string) (*TeamStationState, error)
	SetState(ctx context.Context, db bun.IDB, teamName, stationName string, state State, updated time.Time) error
	SetScore(ctx context.Context, db bun.IDB, teamName, stationName string, score int, updated time.Time) error
	ListStates(ctx context.Context, db bun.IDB) ([]TeamStationState, error)
}
