// Package events selects the event transport named by events.driver.
package events

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airops/config"
	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/kafka"
	"github.com/Domenick1991/airops/internal/rabbitmq"
)

type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

type Consumer interface {
	Consume(ctx context.Context, handler func(context.Context, domain.Event) error) error
	Close() error
}

// NewPublisher returns nil for the "none" driver. Callers must keep the
// untyped nil so services skip publishing.
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Driver {
	case config.EventsDriverNone, "":
		return nil, nil
	case config.EventsDriverKafka:
		return kafka.NewProducer(cfg.Brokers, cfg.Topic), nil
	case config.EventsDriverRabbitMQ:
		return rabbitmq.NewPublisher(cfg.AMQPURL, cfg.Queue), nil
	}
	return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
}

func NewConsumer(cfg config.EventsConfig) (Consumer, error) {
	switch cfg.Driver {
	case config.EventsDriverKafka:
		return kafka.NewConsumer(cfg.Brokers, cfg.GroupID, cfg.Topic), nil
	case config.EventsDriverRabbitMQ:
		return rabbitmq.NewConsumer(cfg.AMQPURL, cfg.Queue), nil
	case config.EventsDriverNone, "":
		return nil, fmt.Errorf("events driver is %q, nothing to consume", cfg.Driver)
	}
	return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
}

type connectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// CheckConnection asks the publisher's transport whether it is reachable.
// Publishers that cannot check report nil.
func CheckConnection(ctx context.Context, p Publisher) error {
	if c, ok := p.(connectionChecker); ok {
		return c.CheckConnection(ctx)
	}
	return nil
}
