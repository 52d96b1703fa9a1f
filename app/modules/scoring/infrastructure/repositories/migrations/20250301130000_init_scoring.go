package scoringmigrations

import (
	"context"

	"github.com/uptrace/bun"

	scoringdb "github.com/exhuma/powonline-sub000/app/modules/scoring/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().
			Model((*scoringdb.Questionnaire)(nil)).
			IfNotExists().
			ForeignKey(`("station_name") REFERENCES "stations" ("name") ON DELETE SET NULL`).
			Exec(ctx); err != nil {
			return err
		}
		_, err := db.NewCreateTable().
			Model((*scoringdb.TeamQuestionnaireScore)(nil)).
			IfNotExists().
			ForeignKey(`("team_name") REFERENCES "teams" ("name") ON DELETE CASCADE`).
			ForeignKey(`("questionnaire_name") REFERENCES "questionnaires" ("name") ON DELETE CASCADE`).
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewDropTable().Model((*scoringdb.TeamQuestionnaireScore)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		_, err := db.NewDropTable().Model((*scoringdb.Questionnaire)(nil)).IfExists().Exec(ctx)
		return err
	})
}
