package services

import (
	"context"

	"comment-board/internal"
)

// LocalEventPublisher hands events straight to an in-process handler. It is
// used when no message broker is configured.
type LocalEventPublisher struct {
	handler internal.EventHandler
}

func NewLocalEventPublisher(h internal.EventHandler) *LocalEventPublisher {
	return &LocalEventPublisher{handler: h}
}

func (p *LocalEventPublisher) Publish(ctx context.Context, evt internal.Event) error {
	return p.handler.HandleEvent(ctx, evt)
}
