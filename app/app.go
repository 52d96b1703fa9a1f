// Package app wires the modules into one running service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"

	auditservice "github.com/exhuma/powonline-sub000/app/modules/audit/application"
	audithandlers "github.com/exhuma/powonline-sub000/app/modules/audit/infrastructure/handlers"
	auditdb "github.com/exhuma/powonline-sub000/app/modules/audit/infrastructure/repositories"
	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	authhandlers "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/handlers"
	userdb "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/repositories"
	progressionservice "github.com/exhuma/powonline-sub000/app/modules/progression/application"
	progressionhandlers "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/handlers"
	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
	scoringservice "github.com/exhuma/powonline-sub000/app/modules/scoring/application"
	scoringhandlers "github.com/exhuma/powonline-sub000/app/modules/scoring/infrastructure/handlers"
	scoringdb "github.com/exhuma/powonline-sub000/app/modules/scoring/infrastructure/repositories"
	stationservice "github.com/exhuma/powonline-sub000/app/modules/station/application"
	stationhandlers "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/handlers"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teamservice "github.com/exhuma/powonline-sub000/app/modules/team/application"
	teamhandlers "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/handlers"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/config"
	"github.com/exhuma/powonline-sub000/db/bundb"
	"github.com/exhuma/powonline-sub000/internal/eventbus"
	"github.com/exhuma/powonline-sub000/internal/observability"
	"github.com/exhuma/powonline-sub000/pkg/jwt"
)

// App holds the wired service.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	db       *bun.DB
	bus      eventbus.EventBus
	registry *prometheus.Registry
	router   chi.Router
}

// NewApp wires configuration, storage, the event bus and every module.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := bundb.NewDB(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	var bus eventbus.EventBus = eventbus.NoOp{}
	if cfg.NATS.URL != "" {
		natsBus, err := eventbus.NewNATSBus(cfg.NATS.URL, watermill.NewSlogLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to set up event bus: %w", err)
		}
		bus = natsBus
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	obs := observability.Observer{
		Logger:  logger,
		Metrics: observability.NewMetrics(registry),
		Tracer:  otel.Tracer("powonline"),
	}

	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)

	userRepo := userdb.UserDBImpl{}
	stationRepo := stationdb.StationDBImpl{}
	teamRepo := teamdb.TeamDBImpl{}
	stateRepo := progressiondb.StateDBImpl{}
	scoringRepo := scoringdb.ScoringDBImpl{}
	auditRepo := auditdb.NewAuditDBImpl()

	auth := authservice.NewAuthService(db, userRepo, tokens, obs)
	stations := stationservice.NewStationService(db, stationRepo, teamRepo, obs)
	teams := teamservice.NewTeamService(db, teamRepo, obs)
	progression := progressionservice.NewProgressionService(db, stateRepo, teamRepo, stationRepo, obs)
	audit := auditservice.NewAuditService(db, auditRepo, obs)
	scoring := scoringservice.NewScoringService(db, scoringRepo, stateRepo, teamRepo, stationRepo, audit, obs)

	authH := authhandlers.NewHandlers(auth, logger)
	stationH := stationhandlers.NewHandlers(stations, logger)
	teamH := teamhandlers.NewHandlers(teams, stations, logger)
	progressionH := progressionhandlers.NewHandlers(progression, bus, logger)
	scoringH := scoringhandlers.NewHandlers(scoring, bus, logger)
	auditH := audithandlers.NewHandlers(audit, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	// Login stays outside the token middleware so a stale bearer token can
	// never block re-authentication.
	router.Mount("/login", authH.LoginRoutes())

	router.Group(func(r chi.Router) {
		r.Use(authhandlers.Middleware(tokens, auth))

		r.Mount("/user", authH.UserRoutes())
		r.Mount("/station", stationH.StationRoutes())
		r.Mount("/route", stationH.RouteRoutes())
		r.Mount("/team", teamH.Routes())
		r.Mount("/questionnaire", scoringH.QuestionnaireRoutes())
		r.Route("/job", func(r chi.Router) {
			progressionH.JobRoutes(r)
			scoringH.JobRoutes(r)
		})
		scoringH.BoardRoutes(r)
		r.Get("/status", progressionH.ListStates)
		r.Get("/auditlog", auditH.ListAuditLog)
	})

	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		db:       db,
		bus:      bus,
		registry: registry,
		router:   router,
	}, nil
}

// Router returns the HTTP surface of the app.
func (a *App) Router() chi.Router { return a.router }

// Close releases the app's external connections.
func (a *App) Close() error {
	if err := a.bus.Close(); err != nil {
		a.Logger.Error("failed to close event bus", slog.Any("error", err))
	}
	return a.db.Close()
}
