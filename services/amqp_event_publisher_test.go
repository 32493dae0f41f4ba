package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comment-board/internal"
)

type channelFake struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *channelFake) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func TestAmqpEventPublisher_Publish(t *testing.T) {
	ch := &channelFake{}
	p := NewAmqpEventPublisher(ch, "board.events")
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	err := p.Publish(context.Background(), internal.Event{Type: internal.EventCommentLiked, CommentID: 3, Likes: 2, At: at})
	require.NoError(t, err)

	assert.Equal(t, "board.events", ch.exchange)
	assert.Equal(t, "comment.liked", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var got internal.Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, internal.EventCommentLiked, got.Type)
	assert.Equal(t, 3, got.CommentID)
	assert.Equal(t, 2, got.Likes)
	assert.True(t, at.Equal(got.At))
}

func TestAmqpEventPublisher_PublishError(t *testing.T) {
	p := NewAmqpEventPublisher(&channelFake{err: amqp.ErrClosed}, "board.events")

	err := p.Publish(context.Background(), internal.Event{Type: internal.EventCommentCreated})
	assert.True(t, errors.Is(err, amqp.ErrClosed))
}
