package scoringdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository is the persistence interface for questionnaires and their
// scores.
type Repository interface {
	CreateQuestionnaire(ctx context.Context, db bun.IDB, q *Questionnaire) error
	GetQuestionnaire(ctx context.Context, db bun.IDB, name string) (*Questionnaire, error)
	ListQuestionnaires(ctx context.Context, db bun.IDB) ([]Questionnaire, error)
	UpdateQuestionnaire(ctx context.Context, db bun.IDB, name string, q *Questionnaire) error
	DeleteQuestionnaire(ctx context.Context, db bun.IDB, name string) error
	QuestionnairesForStation(ctx context.Context, db bun.IDB, stationName string) ([]Questionnaire, error)

	// GetScoreForUpdate locks the score row for the enclosing transaction.
	// A missing row returns (nil, nil): no score recorded yet.
	GetScoreForUpdate(ctx context.Context, db bun.IDB, teamName, questionnaireName string) (*TeamQuestionnaireScore, error)
	UpsertScore(ctx context.Context, db bun.IDB, teamName, questionnaireName string, score int) error
	ListScores(ctx context.Context, db bun.IDB) ([]TeamQuestionnaireScore, error)
	// ListScoreRows resolves every stored score to its collection station.
	ListScoreRows(ctx context.Context, db bun.IDB) ([]QuestionnaireScoreRow, error)
}
