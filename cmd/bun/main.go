package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	auditmigrations "github.com/exhuma/powonline-sub000/app/modules/audit/infrastructure/repositories/migrations"
	usermigrations "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/repositories/migrations"
	userdb "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/repositories"
	progressionmigrations "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories/migrations"
	scoringmigrations "github.com/exhuma/powonline-sub000/app/modules/scoring/infrastructure/repositories/migrations"
	stationmigrations "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories/migrations"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teammigrations "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories/migrations"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/config"
)

type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	// Order matters: later tables reference earlier ones by foreign key.
	migrators := []moduleMigrator{
		{"station", migrate.NewMigrator(db, stationmigrations.Migrations)},
		{"team", migrate.NewMigrator(db, teammigrations.Migrations)},
		{"progression", migrate.NewMigrator(db, progressionmigrations.Migrations)},
		{"scoring", migrate.NewMigrator(db, scoringmigrations.Migrations)},
		{"audit", migrate.NewMigrator(db, auditmigrations.Migrations)},
		{"user", migrate.NewMigrator(db, usermigrations.Migrations)},
	}

	cliApp := &cli.App{
		Name: "bun",
		Commands: []*cli.Command{
			newMigrateCommand(migrators),
			newSeedCommand(db),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newMigrateCommand(migrators []moduleMigrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						fmt.Printf("Initializing migrations for module: %s\n", m.name)
						if err := m.migrator.Init(c.Context); err != nil {
							return fmt.Errorf("module %s: %w", m.name, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						group, err := m.migrator.Migrate(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					// Reverse order so dependents drop before their targets.
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						group, err := m.migrator.Rollback(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "create_go",
				Usage: "create Go migration",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					for _, m := range migrators {
						if m.name != moduleName {
							continue
						}
						name := strings.Join(c.Args().Tail(), "_")
						mf, err := m.migrator.CreateGoMigration(c.Context, name)
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
						return nil
					}
					return fmt.Errorf("invalid module name: %s", moduleName)
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						ms, err := m.migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", m.name, err)
						}
						fmt.Printf("Migrations for module: %s\n", m.name)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}

// newSeedCommand fills an empty database with demo data: one admin user, two
// routes, a handful of ordered stations and a field of teams.
func newSeedCommand(db *bun.DB) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert demo data",
		Action: func(c *cli.Context) error {
			return seed(c.Context, db)
		},
	}
}

func seed(ctx context.Context, db *bun.DB) error {
	faker := gofakeit.New(0)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := userdb.User{Name: "admin", PasswordHash: string(hash), Roles: []string{"admin"}}
	if _, err := db.NewInsert().Model(&admin).On("CONFLICT (name) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	routes := []stationdb.Route{
		{Name: "red", Color: "#cc0000"},
		{Name: "blue", Color: "#0000cc"},
	}
	if _, err := db.NewInsert().Model(&routes).On("CONFLICT (name) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed routes: %w", err)
	}

	stations := []stationdb.Station{
		{Name: "start", Order: 100, IsStart: true},
		{Name: "forest crossing", Order: 200},
		{Name: "river bank", Order: 300},
		{Name: "old mill", Order: 400},
		{Name: "finish", Order: 500, IsEnd: true},
	}
	if _, err := db.NewInsert().Model(&stations).On("CONFLICT (name) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed stations: %w", err)
	}

	var links []stationdb.RouteStation
	for _, route := range routes {
		for _, station := range stations {
			links = append(links, stationdb.RouteStation{RouteName: route.Name, StationName: station.Name})
		}
	}
	if _, err := db.NewInsert().Model(&links).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed route assignments: %w", err)
	}

	teams := make([]teamdb.Team, 0, 12)
	for i := 0; i < 12; i++ {
		route := routes[i%len(routes)].Name
		teams = append(teams, teamdb.Team{
			Name:      fmt.Sprintf("%s %s", faker.AdjectiveDescriptive(), faker.Animal()),
			RouteName: &route,
			Email:     faker.Email(),
			Phone:     faker.Phone(),
		})
	}
	if _, err := db.NewInsert().Model(&teams).On("CONFLICT (name) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed teams: %w", err)
	}

	fmt.Printf("Seeded %d routes, %d stations, %d teams\n", len(routes), len(stations), len(teams))
	return nil
}
