package rabbitmq

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"comment-board/logger"
)

const (
	connectAttempts = 5
	retryDelay      = 5 * time.Second
)

// Connect establishes a connection to RabbitMQ and returns the connection object.
func Connect(amqpURL string) (*amqp.Connection, error) {
	var connection *amqp.Connection
	var err error
	for i := 0; i < connectAttempts; i++ {
		if connection, err = amqp.Dial(amqpURL); err == nil {
			logger.For(nil).Info("Successfully connected to RabbitMQ")
			return connection, nil
		}
		logger.For(nil).Warnf("Failed to connect to RabbitMQ. Retrying in %s...", retryDelay)
		time.Sleep(retryDelay)
	}

	// After all retries, return a descriptive error wrapping the last underlying error.
	return nil, fmt.Errorf("could not connect to RabbitMQ after multiple retries: %w", err)
}

// DeclareExchange declares the durable fanout exchange board events are
// published to.
func DeclareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return nil
}

// BindQueue declares a durable queue and binds it to exchange.
func BindQueue(ch *amqp.Channel, exchange, queue string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if err := ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to bind queue %s to %s: %w", q.Name, exchange, err)
	}
	return q, nil
}
