package usermigrations

import (
	"context"

	"github.com/uptrace/bun"

	userdb "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().
			Model((*userdb.User)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().
			Model((*userdb.UserStation)(nil)).
			IfNotExists().
			ForeignKey(`("user_name") REFERENCES "users" ("name") ON DELETE CASCADE`).
			ForeignKey(`("station_name") REFERENCES "stations" ("name") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewDropTable().Model((*userdb.UserStation)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*userdb.User)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
