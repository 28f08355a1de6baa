package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventHandler receives decoded booking events.
type EventHandler func(ctx context.Context, event domain.BookingEvent) error

type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger.With(zap.String("topic", topic), zap.String("group", groupID)),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads booking events until ctx is done or handler fails. A
// canceled ctx ends the loop without error.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			c.logger.Error("failed to read message", zap.Error(err))
			return fmt.Errorf("failed to read message: %w", err)
		}
		if err := c.handle(ctx, msg, handler); err != nil {
			return err
		}
	}
}

// handle skips messages that do not decode; they would fail on every retry.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message, handler EventHandler) error {
	event, err := DecodeBookingEvent(msg)
	if err != nil {
		c.logger.Warn("skip undecodable message",
			zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}
	if err := handler(ctx, event); err != nil {
		c.logger.Error("booking event handler failed",
			zap.String("booking_id", event.BookingID), zap.Int64("offset", msg.Offset), zap.Error(err))
		return fmt.Errorf("handle booking event %s: %w", event.BookingID, err)
	}
	return nil
}

func DecodeBookingEvent(msg kafka.Message) (domain.BookingEvent, error) {
	var event domain.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return domain.BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	return event, nil
}
