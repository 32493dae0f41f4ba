package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"comment-board/hub"
	"comment-board/internal"
	"comment-board/tally"
)

// Update is the message pushed to live-feed clients.
type Update struct {
	Event  *internal.Event `json:"event,omitempty"`
	Counts map[string]int  `json:"counts"`
}

// Processor applies board events to the vote tally and broadcasts the
// resulting counts.
type Processor struct {
	store tally.VoteStore
	hub   hub.MessageBroadcaster
}

func NewProcessor(s tally.VoteStore, h hub.MessageBroadcaster) *Processor {
	return &Processor{store: s, hub: h}
}

func counterFor(t internal.EventType) (string, bool) {
	switch t {
	case internal.EventCommentCreated:
		return tally.CounterComments, true
	case internal.EventCommentLiked:
		return tally.CounterLikes, true
	case internal.EventCommentDisliked:
		return tally.CounterDislikes, true
	case internal.EventCommentRemoved:
		return tally.CounterRemoved, true
	}
	return "", false
}

func (p *Processor) HandleEvent(ctx context.Context, evt internal.Event) error {
	counter, ok := counterFor(evt.Type)
	if !ok {
		return fmt.Errorf("%w: unknown event type %q", errMalformedEvent, evt.Type)
	}

	if err := p.store.Increment(ctx, counter); err != nil {
		return fmt.Errorf("incrementing %s: %w", counter, err)
	}

	// A removal is also the dislike that caused it.
	if evt.Type == internal.EventCommentRemoved {
		if err := p.store.Increment(ctx, tally.CounterDislikes); err != nil {
			return fmt.Errorf("incrementing %s: %w", tally.CounterDislikes, err)
		}
	}

	counts, err := p.store.Counts(ctx)
	if err != nil {
		return fmt.Errorf("getting vote counts: %w", err)
	}

	update, err := json.Marshal(Update{Event: &evt, Counts: counts})
	if err != nil {
		return fmt.Errorf("encoding update: %w", err)
	}
	p.hub.Broadcast(update)
	return nil
}
