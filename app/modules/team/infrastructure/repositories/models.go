package teamdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Team is a participating unit. RouteName is a weak reference: a team may
// exist before it is assigned a route. The two timestamps are stamped by the
// progression state machine, each at most once. Aggregate score is derived,
// never stored here.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	Name      string  `bun:"name,pk" json:"name"`
	RouteName *string `bun:"route_name" json:"route"`
	Email     string  `bun:"email" json:"email,omitempty"`
	Phone     string  `bun:"phone" json:"phone,omitempty"`

	EffectiveStartTime *time.Time `bun:"effective_start_time" json:"effective_start_time"`
	FinishTime         *time.Time `bun:"finish_time" json:"finish_time"`
}
