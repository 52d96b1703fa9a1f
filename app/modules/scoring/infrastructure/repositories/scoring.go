package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// ScoringDBImpl implements Repository against Postgres.
type ScoringDBImpl struct{}

var _ Repository = ScoringDBImpl{}

func (ScoringDBImpl) CreateQuestionnaire(ctx context.Context, db bun.IDB, q *Questionnaire) error {
	if _, err := db.NewInsert().Model(q).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create questionnaire %q: %w", q.Name, err)
	}
	return nil
}

func (ScoringDBImpl) GetQuestionnaire(ctx context.Context, db bun.IDB, name string) (*Questionnaire, error) {
	var q Questionnaire
	err := db.NewSelect().Model(&q).Where("q.name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("questionnaire %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch questionnaire %q: %w", name, err)
	}
	return &q, nil
}

func (ScoringDBImpl) ListQuestionnaires(ctx context.Context, db bun.IDB) ([]Questionnaire, error) {
	var qs []Questionnaire
	err := db.NewSelect().Model(&qs).Order("ord ASC", "name ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questionnaires: %w", err)
	}
	return qs, nil
}

func (ScoringDBImpl) UpdateQuestionnaire(ctx context.Context, db bun.IDB, name string, q *Questionnaire) error {
	res, err := db.NewUpdate().Model(q).
		Column("name", "max_score", "ord", "station_name").
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update questionnaire %q: %w", name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("questionnaire %q: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

func (ScoringDBImpl) DeleteQuestionnaire(ctx context.Context, db bun.IDB, name string) error {
	_, err := db.NewDelete().Model((*Questionnaire)(nil)).Where("name = ?", name).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete questionnaire %q: %w", name, err)
	}
	return nil
}

func (ScoringDBImpl) QuestionnairesForStation(ctx context.Context, db bun.IDB, stationName string) ([]Questionnaire, error) {
	var qs []Questionnaire
	err := db.NewSelect().Model(&qs).
		Where("q.station_name = ?", stationName).
		Order("ord ASC", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questionnaires for station %q: %w", stationName, err)
	}
	return qs, nil
}

func (ScoringDBImpl) GetScoreForUpdate(ctx context.Context, db bun.IDB, teamName, questionnaireName string) (*TeamQuestionnaireScore, error) {
	var row TeamQuestionnaireScore
	err := db.NewSelect().Model(&row).
		Where("tqs.team_name = ?", teamName).
		Where("tqs.questionnaire_name = ?", questionnaireName).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch questionnaire score (%s, %s): %w", teamName, questionnaireName, err)
	}
	return &row, nil
}

func (ScoringDBImpl) UpsertScore(ctx context.Context, db bun.IDB, teamName, questionnaireName string, score int) error {
	row := TeamQuestionnaireScore{
		TeamName:          teamName,
		QuestionnaireName: questionnaireName,
		Score:             &score,
	}
	_, err := db.NewInsert().Model(&row).
		On("CONFLICT (team_name, questionnaire_name) DO UPDATE").
		Set("score = EXCLUDED.score").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert questionnaire score (%s, %s): %w", teamName, questionnaireName, err)
	}
	return nil
}

func (ScoringDBImpl) ListScores(ctx context.Context, db bun.IDB) ([]TeamQuestionnaireScore, error) {
	var rows []TeamQuestionnaireScore
	err := db.NewSelect().Model(&rows).
		Order("team_name ASC", "questionnaire_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questionnaire scores: %w", err)
	}
	return rows, nil
}

func (ScoringDBImpl) ListScoreRows(ctx context.Context, db bun.IDB) ([]QuestionnaireScoreRow, error) {
	var rows []QuestionnaireScoreRow
	err := db.NewSelect().
		ColumnExpr("tqs.team_name AS team_name").
		ColumnExpr("q.station_name AS station_name").
		ColumnExpr("q.name AS questionnaire_name").
		ColumnExpr("COALESCE(tqs.score, 0) AS score").
		TableExpr("team_questionnaire_scores AS tqs").
		Join("JOIN questionnaires AS q ON q.name = tqs.questionnaire_name").
		Where("q.station_name IS NOT NULL").
		Order("team_name ASC", "station_name ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve questionnaire scores: %w", err)
	}
	return rows, nil
}
