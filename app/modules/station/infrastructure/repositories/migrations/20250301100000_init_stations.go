package stationmigrations

import (
	"context"

	"github.com/uptrace/bun"

	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().
			Model((*stationdb.Station)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().
			Model((*stationdb.Route)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().
			Model((*stationdb.RouteStation)(nil)).
			IfNotExists().
			ForeignKey(`("route_name") REFERENCES "routes" ("name") ON DELETE CASCADE`).
			ForeignKey(`("station_name") REFERENCES "stations" ("name") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewDropTable().Model((*stationdb.RouteStation)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*stationdb.Route)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*stationdb.Station)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
