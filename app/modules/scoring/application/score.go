package scoringservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/uptrace/bun"

	auditdb "github.com/exhuma/powonline-sub000/app/modules/audit/infrastructure/repositories"
	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	"github.com/exhuma/powonline-sub000/internal/eventbus"
	"github.com/exhuma/powonline-sub000/internal/observability"
	"github.com/exhuma/powonline-sub000/internal/results"
)

// ParseScore coerces user input into a score. Scores arrive as free text from
// the field; anything that is not a base-10 integer counts as 0 rather than
// an error.
func ParseScore(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}

// SetStationScore upserts the team's score at a station. An audit entry is
// written only when the score actually changed.
func (s *ScoringService) SetStationScore(ctx context.Context, caller authservice.Caller, teamName, stationName, score string) (ScoreResult, error) {
	return observability.Observe(ctx, s.obs, module, "SetStationScore", func(ctx context.Context) (ScoreResult, error) {
		if err := authservice.RequireStationPermission(caller, stationName); err != nil {
			return scoreFailure(teamName, stationName, err), err
		}

		newScore := ParseScore(score)
		var oldScore int
		err := s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
			if _, err := s.teams.GetTeam(ctx, tx, teamName); err != nil {
				return err
			}
			if _, err := s.stations.GetStation(ctx, tx, stationName); err != nil {
				return err
			}

			if err := s.states.EnsureRow(ctx, tx, teamName, stationName); err != nil {
				return err
			}
			row, err := s.states.GetForUpdate(ctx, tx, teamName, stationName)
			if err != nil {
				return err
			}
			oldScore = row.ScoreValue()

			if err := s.states.SetScore(ctx, tx, teamName, stationName, newScore, s.now()); err != nil {
				return err
			}
			if oldScore != newScore {
				message := fmt.Sprintf("score of team %q at station %q changed from %d to %d",
					teamName, stationName, oldScore, newScore)
				return s.audit.Record(ctx, tx, caller.Name, auditdb.TypeStationScore, message)
			}
			return nil
		})
		if err != nil {
			return scoreFailure(teamName, stationName, err), err
		}

		return scoreSuccess(teamName, stationName, oldScore, newScore), nil
	})
}

// SetQuestionnaireScore upserts the team's score on the single questionnaire
// assigned to a station.
func (s *ScoringService) SetQuestionnaireScore(ctx context.Context, caller authservice.Caller, teamName, stationName, score string) (ScoreResult, error) {
	return observability.Observe(ctx, s.obs, module, "SetQuestionnaireScore", func(ctx context.Context) (ScoreResult, error) {
		if err := authservice.RequireStationPermission(caller, stationName); err != nil {
			return scoreFailure(teamName, stationName, err), err
		}

		newScore := ParseScore(score)
		var oldScore int
		err := s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
			if _, err := s.teams.GetTeam(ctx, tx, teamName); err != nil {
				return err
			}

			questionnaires, err := s.repo.QuestionnairesForStation(ctx, tx, stationName)
			if err != nil {
				return err
			}
			if len(questionnaires) != 1 {
				return &NoQuestionnaireForStationError{Station: stationName, Count: len(questionnaires)}
			}
			questionnaire := questionnaires[0].Name

			row, err := s.repo.GetScoreForUpdate(ctx, tx, teamName, questionnaire)
			if err != nil {
				return err
			}
			if row != nil {
				oldScore = row.ScoreValue()
			}

			if err := s.repo.UpsertScore(ctx, tx, teamName, questionnaire, newScore); err != nil {
				return err
			}
			if oldScore != newScore {
				message := fmt.Sprintf("questionnaire score of team %q on %q changed from %d to %d",
					teamName, questionnaire, oldScore, newScore)
				return s.audit.Record(ctx, tx, caller.Name, auditdb.TypeQuestionnaireScore, message)
			}
			return nil
		})
		if err != nil {
			return scoreFailure(teamName, stationName, err), err
		}

		return scoreSuccess(teamName, stationName, oldScore, newScore), nil
	})
}

func scoreSuccess(teamName, stationName string, oldScore, newScore int) ScoreResult {
	change := ScoreChange{Team: teamName, Station: stationName, OldScore: oldScore, NewScore: newScore}
	return results.Success[ScoreChange, ScoreFailure](change, eventbus.Outbound{
		Channel: eventbus.ChannelScore,
		Event:   eventbus.EventScoreChanged,
		Payload: change,
	})
}

func scoreFailure(teamName, stationName string, err error) ScoreResult {
	return results.Failure[ScoreChange, ScoreFailure](ScoreFailure{
		Team:    teamName,
		Station: stationName,
		Reason:  err.Error(),
	}, err)
}
