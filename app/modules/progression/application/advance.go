package progressionservice

import (
	"context"

	"github.com/uptrace/bun"

	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/eventbus"
	"github.com/exhuma/powonline-sub000/internal/observability"
	"github.com/exhuma/powonline-sub000/internal/results"
)

// Advance moves the team's status at the station one step through the cycle
// unknown -> arrived -> finished -> unknown and maintains the team's
// route-level timestamps:
//
//   - arriving at an end station stamps finish_time (on arrival, not on
//     completion);
//   - leaving the arrived state at a start station stamps
//     effective_start_time (on the second interaction with that station).
//
// Both stamps happen at most once per team; repeated qualifying transitions
// are no-ops. The asymmetry is deliberate event semantics, not an accident.
// The read-modify-write runs under a row lock so concurrent calls on the same
// pair serialize instead of losing an update.
func (s *ProgressionService) Advance(ctx context.Context, caller authservice.Caller, teamName, stationName string) (AdvanceResult, error) {
	return observability.Observe(ctx, s.obs, module, "Advance", func(ctx context.Context) (AdvanceResult, error) {
		if err := authservice.RequireStationPermission(caller, stationName); err != nil {
			return failure(teamName, stationName, err), err
		}

		var newState progressiondb.State
		err := s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
			team, err := s.teams.GetTeamForUpdate(ctx, tx, teamName)
			if err != nil {
				return err
			}
			station, err := s.stations.GetStation(ctx, tx, stationName)
			if err != nil {
				return err
			}

			if err := s.repo.EnsureRow(ctx, tx, teamName, stationName); err != nil {
				return err
			}
			row, err := s.repo.GetForUpdate(ctx, tx, teamName, stationName)
			if err != nil {
				return err
			}

			next := row.State.Advance()
			now := s.now()

			switch next {
			case progressiondb.StateArrived:
				if team.FinishTime == nil && station.IsEnd {
					if err := s.teams.StampFinish(ctx, tx, teamName, now); err != nil {
						return err
					}
				}
			case progressiondb.StateFinished:
				if team.EffectiveStartTime == nil && station.IsStart {
					if err := s.teams.StampEffectiveStart(ctx, tx, teamName, now); err != nil {
						return err
					}
				}
			}

			if err := s.repo.SetState(ctx, tx, teamName, stationName, next, now); err != nil {
				return err
			}
			newState = next
			return nil
		})
		if err != nil {
			return failure(teamName, stationName, err), err
		}

		success := AdvanceSuccess{Team: teamName, Station: stationName, State: newState}
		return results.Success[AdvanceSuccess, OperationFailure](success, eventbus.Outbound{
			Channel: eventbus.ChannelTeam,
			Event:   eventbus.EventTeamStateChanged,
			Payload: success,
		}), nil
	})
}

func failure(teamName, stationName string, err error) AdvanceResult {
	return results.Failure[AdvanceSuccess, OperationFailure](OperationFailure{
		Team:    teamName,
		Station: stationName,
		Reason:  err.Error(),
	}, err)
}
