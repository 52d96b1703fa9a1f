package teammigrations

import (
	"context"

	"github.com/uptrace/bun"

	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().
			Model((*teamdb.Team)(nil)).
			IfNotExists().
			ForeignKey(`("route_name") REFERENCES "routes" ("name") ON DELETE SET NULL`).
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*teamdb.Team)(nil)).IfExists().Exec(ctx)
		return err
	})
}
