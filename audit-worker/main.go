package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"comment-board/common/rabbitmq"
	"comment-board/config"
	"comment-board/internal"
	"comment-board/logger"
)

// auditFields flattens a delivery into log fields. Deliveries that are not
// board events are still recorded, with the decode error attached.
func auditFields(d amqp.Delivery) logrus.Fields {
	fields := logrus.Fields{"routingKey": d.RoutingKey}

	var evt internal.Event
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		fields["decodeError"] = err.Error()
		fields["body"] = string(d.Body)
		return fields
	}

	fields["event"] = evt.Type
	fields["commentID"] = evt.CommentID
	fields["at"] = evt.At
	switch evt.Type {
	case internal.EventCommentCreated:
		if evt.Comment != nil {
			fields["username"] = evt.Comment.Username
			fields["city"] = evt.Comment.City
			fields["language"] = evt.Comment.Language
		}
	case internal.EventCommentLiked:
		fields["likes"] = evt.Likes
	case internal.EventCommentDisliked:
		fields["dislikes"] = evt.Dislikes
	}
	return fields
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.For(nil).Fatalf("Invalid configuration: %s", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		logger.For(nil).Fatal(err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.For(nil).Fatalf("Failed to open channel: %s", err)
	}
	defer ch.Close()

	if err := rabbitmq.DeclareExchange(ch, cfg.RabbitMQExchange); err != nil {
		logger.For(nil).Fatal(err)
	}
	q, err := rabbitmq.BindQueue(ch, cfg.RabbitMQExchange, cfg.AuditQueue)
	if err != nil {
		logger.For(nil).Fatal(err)
	}

	// Consume board events from the audit queue.
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
		logger.For(nil).Fatalf("Failed to register a consumer: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.For(ctx).Infof("Audit worker started. Waiting for board events on %s...", q.Name)
	for {
		select {
		case <-ctx.Done():
			logger.For(ctx).Info("Audit worker exiting")
			return
		case d, ok := <-msgs:
			if !ok {
				logger.For(ctx).Error("Delivery channel closed")
				return
			}
			logger.For(ctx).WithFields(auditFields(d)).Info("board event")
			d.Ack(false)
		}
	}
}
