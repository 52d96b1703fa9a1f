package scoringdb

import (
	"github.com/uptrace/bun"
)

// Questionnaire is a scored quiz handed out during the event. StationName is
// optional; when set, it binds the questionnaire to the station where it is
// collected. At most one questionnaire per station is a configuration
// invariant, re-checked when a score is set.
type Questionnaire struct {
	bun.BaseModel `bun:"table:questionnaires,alias:q"`

	Name        string  `bun:"name,pk" json:"name"`
	MaxScore    int     `bun:"max_score,notnull,default:0" json:"max_score"`
	Order       int     `bun:"ord,notnull,default:0" json:"order"`
	StationName *string `bun:"station_name" json:"station"`
}

// TeamQuestionnaireScore records a team's score on one questionnaire.
type TeamQuestionnaireScore struct {
	bun.BaseModel `bun:"table:team_questionnaire_scores,alias:tqs"`

	TeamName          string `bun:"team_name,pk" json:"team"`
	QuestionnaireName string `bun:"questionnaire_name,pk" json:"questionnaire"`
	Score             *int   `bun:"score" json:"score"`
}

// ScoreValue returns the stored score, treating null as 0.
func (t *TeamQuestionnaireScore) ScoreValue() int {
	if t.Score == nil {
		return 0
	}
	return *t.Score
}

// QuestionnaireScoreRow is one row of the questionnaire-score join: a team's
// score on the questionnaire collected at a station. Questionnaires without a
// station do not appear.
type QuestionnaireScoreRow struct {
	TeamName          string `bun:"team_name"`
	StationName       string `bun:"station_name"`
	QuestionnaireName string `bun:"questionnaire_name"`
	Score             int    `bun:"score"`
}
