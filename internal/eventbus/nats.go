package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	nc "github.com/nats-io/nats.go"
)

// NATSBus publishes change notifications over NATS JetStream.
type NATSBus struct {
	publisher message.Publisher
}

// NewNATSBus creates a JetStream-backed event bus.
func NewNATSBus(natsURL string, logger watermill.LoggerAdapter) (*NATSBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	jsConfig := wnats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: true,
	}

	publisher, err := wnats.NewPublisher(
		wnats.PublisherConfig{
			URL:               natsURL,
			NatsOptions:       options,
			Marshaler:         &wnats.GobMarshaler{},
			JetStream:         jsConfig,
			SubjectCalculator: wnats.DefaultSubjectCalculator,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	return &NATSBus{publisher: publisher}, nil
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func (b *NATSBus) Publish(ctx context.Context, channel, event string, payload any) error {
	body, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	msg.Metadata.Set("event", event)
	msg.Metadata.Set("correlation_id", uuid.NewString())

	if err := b.publisher.Publish(channel, msg); err != nil {
		return fmt.Errorf("failed to publish %s on %s: %w", event, channel, err)
	}
	return nil
}

func (b *NATSBus) Close() error {
	return b.publisher.Close()
}
