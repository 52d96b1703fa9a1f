package stationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// StationDBImpl implements Repository against Postgres.
type StationDBImpl struct{}

var _ Repository = StationDBImpl{}

func (StationDBImpl) CreateStation(ctx context.Context, db bun.IDB, station *Station) error {
	if _, err := db.NewInsert().Model(station).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert station %q: %w", station.Name, err)
	}
	return nil
}

func (StationDBImpl) GetStation(ctx context.Context, db bun.IDB, name string) (*Station, error) {
	var station Station
	err := db.NewSelect().Model(&station).Where("s.name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("station %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch station %q: %w", name, err)
	}
	return &station, nil
}

func (StationDBImpl) ListStations(ctx context.Context, db bun.IDB) ([]Station, error) {
	var stations []Station
	if err := db.NewSelect().Model(&stations).Order("ord ASC", "name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	return stations, nil
}

func (StationDBImpl) UpdateStation(ctx context.Context, db bun.IDB, name string, station *Station) error {
	res, err := db.NewUpdate().Model(station).
		Column("name", "ord", "is_start", "is_end").
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update station %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("station %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

func (StationDBImpl) DeleteStation(ctx context.Context, db bun.IDB, name string) error {
	res, err := db.NewDelete().Model((*Station)(nil)).Where("name = ?", name).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete station %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("station %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}
