package scoringservice

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/uptrace/bun"

	auditdb "github.com/exhuma/powonline-sub000/app/modules/audit/infrastructure/repositories"
	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
	scoringdb "github.com/exhuma/powonline-sub000/app/modules/scoring/infrastructure/repositories"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// FakeScoringRepository is an in-memory scoringdb.Repository.
type FakeScoringRepository struct {
	Questionnaires map[string]*scoringdb.Questionnaire
	Scores         map[string]*scoringdb.TeamQuestionnaireScore
}

func NewFakeScoringRepository(questionnaires ...*scoringdb.Questionnaire) *FakeScoringRepository {
	repo := &FakeScoringRepository{
		Questionnaires: make(map[string]*scoringdb.Questionnaire),
		Scores:         make(map[string]*scoringdb.TeamQuestionnaireScore),
	}
	for _, q := range questionnaires {
		copied := *q
		repo.Questionnaires[q.Name] = &copied
	}
	return repo
}

func scoreKey(teamName, questionnaireName string) string {
	return teamName + "/" + questionnaireName
}

func (f *FakeScoringRepository) CreateQuestionnaire(ctx context.Context, db bun.IDB, q *scoringdb.Questionnaire) error {
	if _, ok := f.Questionnaires[q.Name]; ok {
		return fmt.Errorf("questionnaire %q already exists", q.Name)
	}
	copied := *q
	f.Questionnaires[q.Name] = &copied
	return nil
}

func (f *FakeScoringRepository) GetQuestionnaire(ctx context.Context, db bun.IDB, name string) (*scoringdb.Questionnaire, error) {
	q, ok := f.Questionnaires[name]
	if !ok {
		return nil, fmt.Errorf("questionnaire %q: %w", name, apperrors.ErrNotFound)
	}
	copied := *q
	return &copied, nil
}

func (f *FakeScoringRepository) ListQuestionnaires(ctx context.Context, db bun.IDB) ([]scoringdb.Questionnaire, error) {
	var out []scoringdb.Questionnaire
	for _, q := range f.Questionnaires {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeScoringRepository) UpdateQuestionnaire(ctx context.Context, db bun.IDB, name string, q *scoringdb.Questionnaire) error {
	if _, ok := f.Questionnaires[name]; !ok {
		return fmt.Errorf("questionnaire %q: %w", name, apperrors.ErrNotFound)
	}
	copied := *q
	delete(f.Questionnaires, name)
	f.Questionnaires[copied.Name] = &copied
	return nil
}

func (f *FakeScoringRepository) DeleteQuestionnaire(ctx context.Context, db bun.IDB, name string) error {
	delete(f.Questionnaires, name)
	return nil
}

func (f *FakeScoringRepository) QuestionnairesForStation(ctx context.Context, db bun.IDB, stationName string) ([]scoringdb.Questionnaire, error) {
	var out []scoringdb.Questionnaire
	for _, q := range f.Questionnaires {
		if q.StationName != nil && *q.StationName == stationName {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeScoringRepository) GetScoreForUpdate(ctx context.Context, db bun.IDB, teamName, questionnaireName string) (*scoringdb.TeamQuestionnaireScore, error) {
	row, ok := f.Scores[scoreKey(teamName, questionnaireName)]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *FakeScoringRepository) UpsertScore(ctx context.Context, db bun.IDB, teamName, questionnaireName string, score int) error {
	value := score
	f.Scores[scoreKey(teamName, questionnaireName)] = &scoringdb.TeamQuestionnaireScore{
		TeamName:          teamName,
		QuestionnaireName: questionnaireName,
		Score:             &value,
	}
	return nil
}

func (f *FakeScoringRepository) ListScores(ctx context.Context, db bun.IDB) ([]scoringdb.TeamQuestionnaireScore, error) {
	var out []scoringdb.TeamQuestionnaireScore
	for _, row := range f.Scores {
		out = append(out, *row)
	}
	return out, nil
}

func (f *FakeScoringRepository) ListScoreRows(ctx context.Context, db bun.IDB) ([]scoringdb.QuestionnaireScoreRow, error) {
	var out []scoringdb.QuestionnaireScoreRow
	for _, row := range f.Scores {
		q, ok := f.Questionnaires[row.QuestionnaireName]
		if !ok || q.StationName == nil {
			continue
		}
		out = append(out, scoringdb.QuestionnaireScoreRow{
			TeamName:          row.TeamName,
			StationName:       *q.StationName,
			QuestionnaireName: q.Name,
			Score:             row.ScoreValue(),
		})
	}
	return out, nil
}

// FakeStateStore is an in-memory StateStore.
type FakeStateStore struct {
	Rows map[string]*progressiondb.TeamStationState
}

func NewFakeStateStore() *FakeStateStore {
	return &FakeStateStore{Rows: make(map[string]*progressiondb.TeamStationState)}
}

func stateKey(teamName, stationName string) string { return teamName + "/" + stationName }

func (f *FakeStateStore) Put(row progressiondb.TeamStationState) {
	f.Rows[stateKey(row.TeamName, row.StationName)] = &row
}

func (f *FakeStateStore) EnsureRow(ctx context.Context, db bun.IDB, teamName, stationName string) error {
	k := stateKey(teamName, stationName)
	if _, ok := f.Rows[k]; !ok {
		f.Rows[k] = &progressiondb.TeamStationState{
			TeamName:    teamName,
			StationName: stationName,
			State:       progressiondb.StateUnknown,
		}
	}
	return nil
}

func (f *FakeStateStore) GetForUpdate(ctx context.Context, db bun.IDB, teamName, stationName string) (*progressiondb.TeamStationState, error) {
	row, ok := f.Rows[stateKey(teamName, stationName)]
	if !ok {
		return nil, fmt.Errorf("state row (%s, %s): %w", teamName, stationName, apperrors.ErrNotFound)
	}
	copied := *row
	return &copied, nil
}

func (f *FakeStateStore) SetScore(ctx context.Context, db bun.IDB, teamName, stationName string, score int, updated time.Time) error {
	row, ok := f.Rows[stateKey(teamName, stationName)]
	if !ok {
		return fmt.Errorf("state row (%s, %s): %w", teamName, stationName, apperrors.ErrNotFound)
	}
	value := score
	row.Score = &value
	row.Updated = updated
	return nil
}

func (f *FakeStateStore) ListStates(ctx context.Context, db bun.IDB) ([]progressiondb.TeamStationState, error) {
	var out []progressiondb.TeamStationState
	for _, row := range f.Rows {
		out = append(out, *row)
	}
	return out, nil
}

// FakeTeamStore is an in-memory TeamStore.
type FakeTeamStore struct {
	Teams map[string]*teamdb.Team
}

func NewFakeTeamStore(teams ...*teamdb.Team) *FakeTeamStore {
	store := &FakeTeamStore{Teams: make(map[string]*teamdb.Team)}
	for _, team := range teams {
		copied := *team
		store.Teams[team.Name] = &copied
	}
	return store
}

func (f *FakeTeamStore) GetTeam(ctx context.Context, db bun.IDB, name string) (*teamdb.Team, error) {
	team, ok := f.Teams[name]
	if !ok {
		return nil, fmt.Errorf("team %q: %w", name, apperrors.ErrNotFound)
	}
	copied := *team
	return &copied, nil
}

func (f *FakeTeamStore) ListTeams(ctx context.Context, db bun.IDB) ([]teamdb.Team, error) {
	var out []teamdb.Team
	for _, team := range f.Teams {
		out = append(out, *team)
	}
	return out, nil
}

// FakeStationStore is an in-memory StationStore.
type FakeStationStore struct {
	Stations map[string]*stationdb.Station
	Routes   map[string][]string
}

func NewFakeStationStore(stations ...*stationdb.Station) *FakeStationStore {
	store := &FakeStationStore{
		Stations: make(map[string]*stationdb.Station),
		Routes:   make(map[string][]string),
	}
	for _, station := range stations {
		copied := *station
		store.Stations[station.Name] = &copied
	}
	return store
}

func (f *FakeStationStore) Link(routeName string, stationNames ...string) {
	f.Routes[routeName] = append(f.Routes[routeName], stationNames...)
}

func (f *FakeStationStore) GetStation(ctx context.Context, db bun.IDB, name string) (*stationdb.Station, error) {
	station, ok := f.Stations[name]
	if !ok {
		return nil, fmt.Errorf("station %q: %w", name, apperrors.ErrNotFound)
	}
	copied := *station
	return &copied, nil
}

func (f *FakeStationStore) ListStations(ctx context.Context, db bun.IDB) ([]stationdb.Station, error) {
	var out []stationdb.Station
	for _, station := range f.Stations {
		out = append(out, *station)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *FakeStationStore) StationsForRoute(ctx context.Context, db bun.IDB, routeName string) ([]stationdb.Station, error) {
	var out []stationdb.Station
	for _, name := range f.Routes[routeName] {
		if station, ok := f.Stations[name]; ok {
			out = append(out, *station)
		}
	}
	return out, nil
}

// FakeRecorder captures audit entries.
type FakeRecorder struct {
	Entries []auditdb.AuditLogEntry
}

func (f *FakeRecorder) Record(ctx context.Context, db bun.IDB, username string, entryType auditdb.EntryType, message string) error {
	f.Entries = append(f.Entries, auditdb.AuditLogEntry{
		Username: username,
		Type:     entryType,
		Message:  message,
	})
	return nil
}
