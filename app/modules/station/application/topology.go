package stationservice

import (
	"context"

	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/observability"
)

// Relation keywords accepted by Related.
const (
	RelationPrevious = "previous"
	RelationNext     = "next"
)

// Related returns the name of the station adjacent to stationName in the
// event-global ordering, or "" when no such station exists. Ordering ignores
// route membership. With duplicate order values the pick among ties is
// unspecified.
func (s *StationService) Related(ctx context.Context, stationName, relation string) (string, error) {
	return observability.Observe(ctx, s.obs, module, "Related", func(ctx context.Context) (string, error) {
		if relation != RelationPrevious && relation != RelationNext {
			return "", apperrors.NewValidation("unknown relation %q (expected %q or %q)",
				relation, RelationPrevious, RelationNext)
		}

		station, err := s.repo.GetStation(ctx, s.db, stationName)
		if err != nil {
			return "", err
		}

		all, err := s.repo.ListStations(ctx, s.db)
		if err != nil {
			return "", err
		}

		var best *stationdb.Station
		for i := range all {
			candidate := &all[i]
			switch relation {
			case RelationNext:
				if candidate.Order > station.Order && (best == nil || candidate.Order < best.Order) {
					best = candidate
				}
			case RelationPrevious:
				if candidate.Order < station.Order && (best == nil || candidate.Order > best.Order) {
					best = candidate
				}
			}
		}

		if best == nil {
			return "", nil
		}
		return best.Name, nil
	})
}

// ReachableStations returns the stations on the team's assigned route; a team
// without a route reaches nothing.
func (s *StationService) ReachableStations(ctx context.Context, teamName string) ([]stationdb.Station, error) {
	return observability.Observe(ctx, s.obs, module, "ReachableStations", func(ctx context.Context) ([]stationdb.Station, error) {
		team, err := s.teams.GetTeam(ctx, s.db, teamName)
		if err != nil {
			return nil, err
		}
		if team.RouteName == nil {
			return []stationdb.Station{}, nil
		}
		return s.repo.StationsForRoute(ctx, s.db, *team.RouteName)
	})
}
