package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"comment-board/internal"
)

// amqpChannel is the subset of *amqp.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AmqpEventPublisher publishes board events to a RabbitMQ exchange.
type AmqpEventPublisher struct {
	amqpChannel  amqpChannel
	exchange     string
	channelMutex sync.Mutex
}

func NewAmqpEventPublisher(ch amqpChannel, exchange string) *AmqpEventPublisher {
	return &AmqpEventPublisher{
		amqpChannel: ch,
		exchange:    exchange,
	}
}

func (p *AmqpEventPublisher) Publish(ctx context.Context, evt internal.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", evt.Type, err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.channelMutex.Lock()
	defer p.channelMutex.Unlock()

	if err := p.amqpChannel.PublishWithContext(
		ctx,
		p.exchange,
		string(evt.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(evt.Type),
			Timestamp:    evt.At,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publishing %s event: %w", evt.Type, err)
	}
	return nil
}
