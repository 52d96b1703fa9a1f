package progressiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// State is a team's recorded status at one station.
type State string

const (
	StateUnknown  State = "unknown"
	StateArrived  State = "arrived"
	StateFinished State = "finished"
	// StateUnreachable is never stored; the dashboard synthesizes it for
	// stations off a team's route.
	StateUnreachable State = "unreachable"
)

// Advance returns the next state in the cycle
// unknown -> arrived -> finished -> unknown. There is no terminal state; any
// value outside the cycle advances to arrived.
func (s State) Advance() State {
	switch s {
	case StateArrived:
		return StateFinished
	case StateFinished:
		return StateUnknown
	default:
		return StateArrived
	}
}

// TeamStationState records a team's progress and score at one station. The
// row is created lazily on first interaction; a missing row means
// state=unknown, score=0.
type TeamStationState struct {
	bun.BaseModel `bun:"table:team_station_states,alias:tss"`

	TeamName    string    `bun:"team_name,pk" json:"team"`
	StationName string    `bun:"station_name,pk" json:"station"`
	State       State     `bun:"state,notnull,default:'unknown'" json:"state"`
	Score       *int      `bun:"score" json:"score"`
	Updated     time.Time `bun:"updated,notnull,default:current_timestamp" json:"updated"`
}

// ScoreValue returns the stored score, treating null as 0.
func (t *TeamStationState) ScoreValue() int {
	if t.Score == nil {
		return 0
	}
	return *t.Score
}
