package progressionservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/observability"
	"github.com/exhuma/powonline-sub000/internal/results"
)

const module = "progression"

// AdvanceSuccess is the payload of a successful Advance.
type AdvanceSuccess struct {
	Team    string              `json:"team"`
	Station string              `json:"station"`
	State   progressiondb.State `json:"state"`
}

// OperationFailure describes why an operation was rejected.
type OperationFailure struct {
	Team    string `json:"team"`
	Station string `json:"station"`
	Reason  string `json:"reason"`
}

// AdvanceResult carries the outcome of Advance plus its change
// notifications.
type AdvanceResult = results.OperationResult[AdvanceSuccess, OperationFailure]

// Service is the progression state machine surface.
type Service interface {
	Advance(ctx context.Context, caller authservice.Caller, teamName, stationName string) (AdvanceResult, error)
	ListStates(ctx context.Context) ([]progressiondb.TeamStationState, error)
}

// TeamStore is the slice of the team repository the state machine needs.
type TeamStore interface {
	GetTeamForUpdate(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error)
	StampEffectiveStart(ctx context.Context, db bun.IDB, teamName string, t time.Time) error
	StampFinish(ctx context.Context, db bun.IDB, teamName string, t time.Time) error
}

// StationStore is the slice of the station repository the state machine
// needs.
type StationStore interface {
	GetStation(ctx context.Context, db bun.IDB, name string) (*stationdb.Station, error)
}

// ProgressionService implements Service.
type ProgressionService struct {
	db       *bun.DB
	repo     progressiondb.Repository
	teams    TeamStore
	stations StationStore
	obs      observability.Observer
	now      func() time.Time
}

var _ Service = (*ProgressionService)(nil)

func NewProgressionService(
	db *bun.DB,
	repo progressiondb.Repository,
	teams TeamStore,
	stations StationStore,
	obs observability.Observer,
) *ProgressionService {
	return &ProgressionService{
		db:       db,
		repo:     repo,
		teams:    teams,
		stations: stations,
		obs:      obs,
		now:      time.Now,
	}
}

// runInTx runs fn inside one database transaction. A nil DB (unit tests with
// fakes) runs fn directly.
func (s *ProgressionService) runInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

func (s *ProgressionService) ListStates(ctx context.Context) ([]progressiondb.TeamStationState, error) {
	return observability.Observe(ctx, s.obs, module, "ListStates", func(ctx context.Context) ([]progressiondb.TeamStationState, error) {
		return s.repo.ListStates(ctx, s.db)
	})
}
