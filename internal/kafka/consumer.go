package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/logger"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads events as part of a consumer group. An offset is committed
// only after its event was handled or found undecodable.
type Consumer struct {
	reader messageReader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume handles events until ctx ends or the reader fails. Undecodable
// messages are logged and skipped; a handler error stops the loop with the
// offset uncommitted.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, domain.Event) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		var event domain.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Warn().Err(err).Int("partition", msg.Partition).Int64("offset", msg.Offset).Msg("skipping malformed event")
		} else if err := handler(ctx, event); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("failed to commit offset %d: %w", msg.Offset, err)
		}
	}
}
