// Package rabbitmq carries domain events over a durable RabbitMQ queue. It is
// the alternative to the Kafka driver and speaks the same JSON payload.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	url   string
	queue string
}

func NewPublisher(url, queue string) *Publisher {
	return &Publisher{url: url, queue: queue}
}

// Publish dials, declares the queue and sends one persistent message per call.
func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub, err := encode(event)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	logger.Debug().Str("queue", p.queue).Str("type", string(event.Type)).Str("id", event.ID).Msg("event published")
	return nil
}

func (p *Publisher) Close() error { return nil }

func encode(event domain.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}

func decode(body []byte) (domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("unmarshal: %w", err)
	}
	return event, nil
}

type Consumer struct {
	url   string
	queue string
}

func NewConsumer(url, queue string) *Consumer {
	return &Consumer{url: url, queue: queue}
}

func (c *Consumer) Close() error { return nil }

// Consume reconnects with exponential backoff until ctx ends.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, domain.Event) error) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			logger.Warn().Err(err).Dur("retry_in", backoff).Msg("rabbitmq: failed to dial broker")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn, handler)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn().Err(err).Msg("rabbitmq: consume loop ended, reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection, handler func(context.Context, domain.Event) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.Warn().Err(err).Msg("rabbitmq: set QoS failed")
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		handleDelivery(ctx, d, handler)
	}
	return errors.New("deliveries channel closed")
}

// handleDelivery acks handled events. Malformed bodies are dropped; events
// whose handler fails are requeued for another attempt.
func handleDelivery(ctx context.Context, d amqp.Delivery, handler func(context.Context, domain.Event) error) {
	event, err := decode(d.Body)
	if err != nil {
		logger.Warn().Err(err).Msg("rabbitmq: dropping malformed event")
		_ = d.Nack(false, false)
		return
	}
	if err := handler(ctx, event); err != nil {
		logger.Error().Err(err).Str("id", event.ID).Msg("rabbitmq: handle event failed, requeueing")
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
