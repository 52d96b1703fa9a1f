package progressiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// StateDBImpl implements Repository against Postgres.
type StateDBImpl struct{}

var _ Repository = StateDBImpl{}

func (StateDBImpl) EnsureRow(ctx context.Context, db bun.IDB, teamName, stationName string) error {
	row := TeamStationState{
		TeamName:    teamName,
		StationName: stationName,
		State:       StateUnknown,
		Updated:     time.Now(),
	}
	_, err := db.NewInsert().Model(&row).
		On("CONFLICT (team_name, station_name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure state row for (%s, %s): %w", teamName, stationName, err)
	}
	return nil
}

func (StateDBImpl) GetForUpdate(ctx context.Context, db bun.IDB, teamName, stationName string) (*TeamStationState, error) {
	var row TeamStationState
	err := db.NewSelect().Model(&row).
		Where("tss.team_name = ?", teamName).
		Where("tss.station_name = ?", stationName).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("state row (%s, %s): %w", teamName, stationName, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch state row (%s, %s): %w", teamName, stationName, err)
	}
	return &row, nil
}

func (StateDBImpl) SetState(ctx context.Context, db bun.IDB, teamName, stationName string, state State, updated time.Time) error {
	res, err := db.NewUpdate().Model((*TeamStationState)(nil)).
		Set("state = ?", state).
		Set("updated = ?", updated).
		Where("team_name = ?", teamName).
		Where("station_name = ?", stationName).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set state for (%s, %s): %w", teamName, stationName, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("state row (%s, %s): %w", teamName, stationName, apperrors.ErrNotFound)
	}
	return nil
}

func (StateDBImpl) SetScore(ctx context.Context, db bun.IDB, teamName, stationName string, score int, updated time.Time) error {
	res, err := db.NewUpdate().Model((*TeamStationState)(nil)).
		Set("score = ?", score).
		Set("updated = ?", updated).
		Where("team_name = ?", teamName).
		Where("station_name = ?", stationName).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set score for (%s, %s): %w", teamName, stationName, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("state row (%s, %s): %w", teamName, stationName, apperrors.ErrNotFound)
	}
	return nil
}

func (StateDBImpl) ListStates(ctx context.Context, db bun.IDB) ([]TeamStationState, error) {
	var rows []TeamStationState
	err := db.NewSelect().Model(&rows).
		Order("team_name ASC", "station_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list state rows: %w", err)
	}
	return rows, nil
}
