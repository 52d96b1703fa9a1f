// Package bundb builds the bun database handle shared by all modules.
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/config"
)

// NewDB opens a connection pool against Postgres and verifies it.
func NewDB(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	// m2m join models must be registered before any relation query uses them.
	db.RegisterModel((*stationdb.RouteStation)(nil))
	return db, nil
}
