package scoringservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	auditservice "github.com/exhuma/powonline-sub000/app/modules/audit/application"
	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
	scoringdb "github.com/exhuma/powonline-sub000/app/modules/scoring/infrastructure/repositories"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/observability"
	"github.com/exhuma/powonline-sub000/internal/results"
)

const module = "scoring"

// ScoreChange is the payload of a successful score mutation.
type ScoreChange struct {
	Team     string `json:"team"`
	Station  string `json:"station"`
	OldScore int    `json:"old_score"`
	NewScore int    `json:"new_score"`
}

// ScoreFailure describes why a score mutation was rejected.
type ScoreFailure struct {
	Team    string `json:"team"`
	Station string `json:"station"`
	Reason  string `json:"reason"`
}

// ScoreResult carries the outcome of a score mutation plus its change
// notifications.
type ScoreResult = results.OperationResult[ScoreChange, ScoreFailure]

// ScoreboardEntry is one line of the scoreboard.
type ScoreboardEntry struct {
	Team  string `json:"team"`
	Total int    `json:"score"`
}

// DashboardCell is one team/station intersection of the global dashboard.
type DashboardCell struct {
	Station string              `json:"station"`
	Score   int                 `json:"score"`
	State   progressiondb.State `json:"state"`
}

// DashboardRow is one team's line of the global dashboard: a cell for every
// station of the event, reachable or not.
type DashboardRow struct {
	Team     string          `json:"team"`
	Stations []DashboardCell `json:"stations"`
}

// QuestionnaireScore is a team's score on the questionnaire of one station.
type QuestionnaireScore struct {
	Questionnaire string `json:"name"`
	Score         int    `json:"score"`
}

// Service is the scoring and aggregation surface.
type Service interface {
	SetStationScore(ctx context.Context, caller authservice.Caller, teamName, stationName, score string) (ScoreResult, error)
	SetQuestionnaireScore(ctx context.Context, caller authservice.Caller, teamName, stationName, score string) (ScoreResult, error)
	Scoreboard(ctx context.Context) ([]ScoreboardEntry, error)
	ScoreboardXLSX(ctx context.Context) ([]byte, error)
	ScoreboardPNG(ctx context.Context) ([]byte, error)
	GlobalDashboard(ctx context.Context) ([]DashboardRow, error)
	QuestionnaireScores(ctx context.Context) (map[string]map[string]QuestionnaireScore, error)

	ListQuestionnaires(ctx context.Context) ([]scoringdb.Questionnaire, error)
	CreateQuestionnaire(ctx context.Context, caller authservice.Caller, q *scoringdb.Questionnaire) error
	UpdateQuestionnaire(ctx context.Context, caller authservice.Caller, name string, q *scoringdb.Questionnaire) error
	DeleteQuestionnaire(ctx context.Context, caller authservice.Caller, name string) error
}

// TeamStore is the slice of the team repository the scoring engine needs.
type TeamStore interface {
	GetTeam(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error)
	ListTeams(ctx context.Context, db bun.IDB) ([]teamdb.Team, error)
}

// StationStore is the slice of the station repository the scoring engine
// needs.
type StationStore interface {
	GetStation(ctx context.Context, db bun.IDB, name string) (*stationdb.Station, error)
	ListStations(ctx context.Context, db bun.IDB) ([]stationdb.Station, error)
	StationsForRoute(ctx context.Context, db bun.IDB, routeName string) ([]stationdb.Station, error)
}

// StateStore is the slice of the progression repository the scoring engine
// needs: station scores live on the team/station state row.
type StateStore interface {
	EnsureRow(ctx context.Context, db bun.IDB, teamName, stationName string) error
	GetForUpdate(ctx context.Context, db bun.IDB, teamName, stationName string) (*progressiondb.TeamStationState, error)
	SetScore(ctx context.Context, db bun.IDB, teamName, stationName string, score int, updated time.Time) error
	ListStates(ctx context.Context, db bun.IDB) ([]progressiondb.TeamStationState, error)
}

// ScoringService implements Service.
type ScoringService struct {
	db       *bun.DB
	repo     scoringdb.Repository
	states   StateStore
	teams    TeamStore
	stations StationStore
	audit    auditservice.Recorder
	obs      observability.Observer
	now      func() time.Time
}

var _ Service = (*ScoringService)(nil)

func NewScoringService(
	db *bun.DB,
	repo scoringdb.Repository,
	states StateStore,
	teams TeamStore,
	stations StationStore,
	audit auditservice.Recorder,
	obs observability.Observer,
) *ScoringService {
	return &ScoringService{
		db:       db,
		repo:     repo,
		states:   states,
		teams:    teams,
		stations: stations,
		audit:    audit,
		obs:      obs,
		now:      time.Now,
	}
}

// runInTx runs fn inside one database transaction. A nil DB (unit tests with
// fakes) runs fn directly.
func (s *ScoringService) runInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

func (s *ScoringService) ListQuestionnaires(ctx context.Context) ([]scoringdb.Questionnaire, error) {
	return observability.Observe(ctx, s.obs, module, "ListQuestionnaires", func(ctx context.Context) ([]scoringdb.Questionnaire, error) {
		return s.repo.ListQuestionnaires(ctx, s.db)
	})
}

func (s *ScoringService) CreateQuestionnaire(ctx context.Context, caller authservice.Caller, q *scoringdb.Questionnaire) error {
	_, err := observability.Observe(ctx, s.obs, module, "CreateQuestionnaire", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminStations); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.CreateQuestionnaire(ctx, s.db, q)
	})
	return err
}

func (s *ScoringService) UpdateQuestionnaire(ctx context.Context, caller authservice.Caller, name string, q *scoringdb.Questionnaire) error {
	_, err := observability.Observe(ctx, s.obs, module, "UpdateQuestionnaire", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminStations); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.UpdateQuestionnaire(ctx, s.db, name, q)
	})
	return err
}

func (s *ScoringService) DeleteQuestionnaire(ctx context.Context, caller authservice.Caller, name string) error {
	_, err := observability.Observe(ctx, s.obs, module, "DeleteQuestionnaire", func(ctx context.Context) (struct{}, error) {
		if err := authservice.RequirePermission(caller, authservice.PermAdminStations); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.DeleteQuestionnaire(ctx, s.db, name)
	})
	return err
}
