package eventbus

import (
	"context"
)

// Channel names used for change notifications.
const (
	ChannelTeam  = "powonline.team"
	ChannelScore = "powonline.score"
	ChannelFile  = "powonline.file"
)

// Event names published on the channels above.
const (
	EventTeamStateChanged = "team.state.changed"
	EventScoreChanged     = "score.changed"
	EventFileAdded        = "file.added"
	EventFileDeleted      = "file.deleted"
)

// Outbound is a change notification produced by a service operation. The
// operation itself never publishes; it returns the events it wants delivered
// and the caller decides how (and whether) to deliver them.
type Outbound struct {
	Channel string
	Event   string
	Payload any
}

// EventBus delivers change notifications to interested subscribers. Delivery
// is best-effort: a failed publish never fails the mutation that produced it.
type EventBus interface {
	Publish(ctx context.Context, channel string, event string, payload any) error
	Close() error
}

// NoOp is an EventBus that discards everything. Used when NATS is not
// configured.
type NoOp struct{}

func (NoOp) Publish(ctx context.Context, channel, event string, payload any) error { return nil }

func (NoOp) Close() error { return nil }
