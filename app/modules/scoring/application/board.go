package scoringservice

import (
	"context"
	"sort"

	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/observability"
)

// Scoreboard returns every team with its total score, descending. A team's
// total is the sum of its station scores and questionnaire scores; teams
// without any score rows appear with 0. Equal totals order by team name
// ascending.
func (s *ScoringService) Scoreboard(ctx context.Context) ([]ScoreboardEntry, error) {
	return observability.Observe(ctx, s.obs, module, "Scoreboard", func(ctx context.Context) ([]ScoreboardEntry, error) {
		teams, err := s.teams.ListTeams(ctx, s.db)
		if err != nil {
			return nil, err
		}
		states, err := s.states.ListStates(ctx, s.db)
		if err != nil {
			return nil, err
		}
		questionnaireScores, err := s.repo.ListScores(ctx, s.db)
		if err != nil {
			return nil, err
		}

		totals := make(map[string]int, len(teams))
		for _, team := range teams {
			totals[team.Name] = 0
		}
		for _, row := range states {
			if _, ok := totals[row.TeamName]; ok {
				totals[row.TeamName] += row.ScoreValue()
			}
		}
		for _, row := range questionnaireScores {
			if _, ok := totals[row.TeamName]; ok {
				totals[row.TeamName] += row.ScoreValue()
			}
		}

		board := make([]ScoreboardEntry, 0, len(totals))
		for team, total := range totals {
			board = append(board, ScoreboardEntry{Team: team, Total: total})
		}
		sort.Slice(board, func(i, j int) bool {
			if board[i].Total != board[j].Total {
				return board[i].Total > board[j].Total
			}
			return board[i].Team < board[j].Team
		})
		return board, nil
	})
}

// GlobalDashboard returns the full teams-by-stations matrix, ordered by team
// name then station name. Stations off a team's route are masked to
// {unreachable, 0} even when a state row exists for the pair; reachable cells
// show the stored row, defaulting to {unknown, 0}.
func (s *ScoringService) GlobalDashboard(ctx context.Context) ([]DashboardRow, error) {
	return observability.Observe(ctx, s.obs, module, "GlobalDashboard", func(ctx context.Context) ([]DashboardRow, error) {
		teams, err := s.teams.ListTeams(ctx, s.db)
		if err != nil {
			return nil, err
		}
		stations, err := s.stations.ListStations(ctx, s.db)
		if err != nil {
			return nil, err
		}
		states, err := s.states.ListStates(ctx, s.db)
		if err != nil {
			return nil, err
		}

		sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
		sort.Slice(stations, func(i, j int) bool { return stations[i].Name < stations[j].Name })

		type cellKey struct{ team, station string }
		byCell := make(map[cellKey]progressiondb.TeamStationState, len(states))
		for _, row := range states {
			byCell[cellKey{row.TeamName, row.StationName}] = row
		}

		// Route membership per route name, resolved once per distinct route.
		reachableByRoute := make(map[string]map[string]bool)
		for _, team := range teams {
			if team.RouteName == nil {
				continue
			}
			if _, ok := reachableByRoute[*team.RouteName]; ok {
				continue
			}
			routeStations, err := s.stations.StationsForRoute(ctx, s.db, *team.RouteName)
			if err != nil {
				return nil, err
			}
			members := make(map[string]bool, len(routeStations))
			for _, station := range routeStations {
				members[station.Name] = true
			}
			reachableByRoute[*team.RouteName] = members
		}

		rows := make([]DashboardRow, 0, len(teams))
		for _, team := range teams {
			var reachable map[string]bool
			if team.RouteName != nil {
				reachable = reachableByRoute[*team.RouteName]
			}

			cells := make([]DashboardCell, 0, len(stations))
			for _, station := range stations {
				if !reachable[station.Name] {
					cells = append(cells, DashboardCell{
						Station: station.Name,
						Score:   0,
						State:   progressiondb.StateUnreachable,
					})
					continue
				}
				cell := DashboardCell{Station: station.Name, State: progressiondb.StateUnknown}
				if row, ok := byCell[cellKey{team.Name, station.Name}]; ok {
					cell.Score = row.ScoreValue()
					cell.State = row.State
				}
				cells = append(cells, cell)
			}
			rows = append(rows, DashboardRow{Team: team.Name, Stations: cells})
		}
		return rows, nil
	})
}

// QuestionnaireScores returns per-team, per-station questionnaire results.
// Questionnaires not assigned to any station are absent.
func (s *ScoringService) QuestionnaireScores(ctx context.Context) (map[string]map[string]QuestionnaireScore, error) {
	return observability.Observe(ctx, s.obs, module, "QuestionnaireScores", func(ctx context.Context) (map[string]map[string]QuestionnaireScore, error) {
		rows, err := s.repo.ListScoreRows(ctx, s.db)
		if err != nil {
			return nil, err
		}

		out := make(map[string]map[string]QuestionnaireScore)
		for _, row := range rows {
			byStation, ok := out[row.TeamName]
			if !ok {
				byStation = make(map[string]QuestionnaireScore)
				out[row.TeamName] = byStation
			}
			byStation[row.StationName] = QuestionnaireScore{
				Questionnaire: row.QuestionnaireName,
				Score:         row.Score,
			}
		}
		return out, nil
	})
}
