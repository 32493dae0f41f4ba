package internal

import (
	"context"
	"time"

	"comment-board/board"
)

// EventType names a comment lifecycle transition.
type EventType string

const (
	EventCommentCreated  EventType = "comment.created"
	EventCommentLiked    EventType = "comment.liked"
	EventCommentDisliked EventType = "comment.disliked"
	EventCommentRemoved  EventType = "comment.removed"
)

// Event is published after every successful mutation of the board.
type Event struct {
	Type      EventType      `json:"type"`
	CommentID int            `json:"commentId"`
	Comment   *board.Comment `json:"comment,omitempty"`
	Likes     int            `json:"likes,omitempty"`
	Dislikes  int            `json:"dislikes,omitempty"`
	At        time.Time      `json:"at"`
}

// EventPublisher defines the interface for publishing board events.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}

// EventHandler consumes board events, wherever they were delivered from.
type EventHandler interface {
	HandleEvent(ctx context.Context, evt Event) error
}

// Translation is the result of translating a comment's text.
type Translation struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// CommentService is everything the HTTP layer needs from the board.
type CommentService interface {
	CreateComment(ctx context.Context, c board.NewComment) (board.Comment, error)
	ListComments(ctx context.Context) []board.Comment
	CountComments(ctx context.Context) int
	GetComment(ctx context.Context, id int) (board.Comment, error)
	TranslateComment(ctx context.Context, id int, lang string) (Translation, error)
	LikeComment(ctx context.Context, id int) (int, error)
	DislikeComment(ctx context.Context, id int) (board.DislikeOutcome, error)
}
