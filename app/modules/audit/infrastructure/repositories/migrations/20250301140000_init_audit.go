package auditmigrations

import (
	"context"

	"github.com/uptrace/bun"

	auditdb "github.com/exhuma/powonline-sub000/app/modules/audit/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().
			Model((*auditdb.AuditLogEntry)(nil)).
			IfNotExists().
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*auditdb.AuditLogEntry)(nil)).IfExists().Exec(ctx)
		return err
	})
}
