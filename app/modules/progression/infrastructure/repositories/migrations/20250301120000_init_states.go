package progressionmigrations

import (
	"context"

	"github.com/uptrace/bun"

	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().
			Model((*progressiondb.TeamStationState)(nil)).
			IfNotExists().
			ForeignKey(`("team_name") REFERENCES "teams" ("name") ON DELETE CASCADE`).
			ForeignKey(`("station_name") REFERENCES "stations" ("name") ON DELETE CASCADE`).
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*progressiondb.TeamStationState)(nil)).IfExists().Exec(ctx)
		return err
	})
}
