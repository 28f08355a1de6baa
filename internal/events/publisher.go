// Package events carries booking events in-process when no Kafka brokers
// are configured.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

type GoChannelPublisher struct {
	pubSub *gochannel.GoChannel
	logger *zap.Logger
}

func NewGoChannelPublisher(logger *zap.Logger) *GoChannelPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 1024,
	}, NewWatermillLogger(logger))
	return &GoChannelPublisher{pubSub: pubSub, logger: logger}
}

// Publish has the same shape as the Kafka producer. The key is stored in the
// message metadata.
func (p *GoChannelPublisher) Publish(_ context.Context, topic, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("key", key)
	return p.pubSub.Publish(topic, msg)
}

func (p *GoChannelPublisher) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, topic)
}

func (p *GoChannelPublisher) Close() error {
	return p.pubSub.Close()
}

// Forward decodes booking events published on topic and hands them to handler
// until ctx is done or the publisher is closed. Undecodable messages are
// dropped, handler errors nack the message for redelivery.
func (p *GoChannelPublisher) Forward(ctx context.Context, topic string, handler func(context.Context, domain.BookingEvent) error) error {
	messages, err := p.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	for msg := range messages {
		var event domain.BookingEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			p.logger.Warn("drop undecodable event", zap.String("uuid", msg.UUID), zap.Error(err))
			msg.Ack()
			continue
		}
		if err := handler(msg.Context(), event); err != nil {
			p.logger.Warn("event handler failed", zap.String("booking_id", event.BookingID), zap.Error(err))
			msg.Nack()
			continue
		}
		msg.Ack()
	}
	return nil
}
