package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"comment-board/common/rabbitmq"
	"comment-board/internal"
	"comment-board/logger"
)

var errMalformedEvent = errors.New("malformed event")

type Consumer struct {
	handler  internal.EventHandler
	conn     *amqp.Connection
	exchange string
	queue    string
}

func New(h internal.EventHandler, c *amqp.Connection, exchange, queue string) *Consumer {
	return &Consumer{handler: h, conn: c, exchange: exchange, queue: queue}
}

// Start consumes board events until ctx is cancelled or the delivery channel
// closes.
func (c *Consumer) Start(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel: %w", err)
	}
	defer ch.Close()

	if err := rabbitmq.DeclareExchange(ch, c.exchange); err != nil {
		return err
	}
	q, err := rabbitmq.BindQueue(ch, c.exchange, c.queue)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	logger.For(ctx).Infof("RabbitMQ consumer started on %s. Waiting for board events...", q.Name)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.deliver(ctx, d)
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, d amqp.Delivery) {
	err := c.handle(ctx, d.Body)
	switch {
	case err == nil:
		d.Ack(false)
	case errors.Is(err, errMalformedEvent):
		logger.For(ctx).WithError(err).Warn("dropping board event")
		d.Reject(false)
	default:
		logger.For(ctx).WithError(err).Error("failed to process board event")
		d.Nack(false, true)
	}
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	evt, err := decodeEvent(body)
	if err != nil {
		return err
	}
	ctx = logger.NewContextWithFields(ctx, logrus.Fields{
		"event":     evt.Type,
		"commentID": evt.CommentID,
	})
	return c.handler.HandleEvent(ctx, evt)
}

func decodeEvent(body []byte) (internal.Event, error) {
	var evt internal.Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return internal.Event{}, fmt.Errorf("%w: %s", errMalformedEvent, err)
	}
	if evt.Type == "" {
		return internal.Event{}, fmt.Errorf("%w: missing type", errMalformedEvent)
	}
	return evt, nil
}
