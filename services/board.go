package services

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"comment-board/board"
	"comment-board/internal"
	"comment-board/logger"
)

// BoardService wires the comment store to the translator and the event
// publisher. It holds no state of its own.
type BoardService struct {
	store      *board.Store
	translator board.Translator
	publisher  internal.EventPublisher
	now        func() time.Time
}

func NewBoardService(store *board.Store, translator board.Translator, publisher internal.EventPublisher) *BoardService {
	return &BoardService{
		store:      store,
		translator: translator,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *BoardService) CreateComment(ctx context.Context, c board.NewComment) (board.Comment, error) {
	comment, err := s.store.Add(c)
	if err != nil {
		return board.Comment{}, err
	}

	snapshot := comment
	s.publish(ctx, internal.Event{
		Type:      internal.EventCommentCreated,
		CommentID: comment.ID,
		Comment:   &snapshot,
	})
	return comment, nil
}

func (s *BoardService) ListComments(ctx context.Context) []board.Comment {
	return s.store.List()
}

func (s *BoardService) CountComments(ctx context.Context) int {
	return s.store.Len()
}

func (s *BoardService) GetComment(ctx context.Context, id int) (board.Comment, error) {
	return s.store.FindByID(id)
}

func (s *BoardService) TranslateComment(ctx context.Context, id int, lang string) (internal.Translation, error) {
	comment, err := s.store.FindByID(id)
	if err != nil {
		return internal.Translation{}, err
	}

	translated, err := s.translator.Translate(ctx, comment.Text, lang)
	if err != nil {
		return internal.Translation{}, fmt.Errorf("translating comment %d: %w", id, err)
	}
	return internal.Translation{Original: comment.Text, Translated: translated}, nil
}

func (s *BoardService) LikeComment(ctx context.Context, id int) (int, error) {
	likes, err := s.store.Like(id)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, internal.Event{
		Type:      internal.EventCommentLiked,
		CommentID: id,
		Likes:     likes,
	})
	return likes, nil
}

func (s *BoardService) DislikeComment(ctx context.Context, id int) (board.DislikeOutcome, error) {
	out, err := s.store.Dislike(id)
	if err != nil {
		return board.DislikeOutcome{}, err
	}

	evt := internal.Event{Type: internal.EventCommentDisliked, CommentID: id, Dislikes: out.Dislikes}
	if out.Removed {
		evt = internal.Event{Type: internal.EventCommentRemoved, CommentID: id}
	}
	s.publish(ctx, evt)
	return out, nil
}

// publish never fails the caller: by the time it runs the store has already
// applied the mutation.
func (s *BoardService) publish(ctx context.Context, evt internal.Event) {
	evt.At = s.now()
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.For(ctx).WithError(err).WithFields(logrus.Fields{
			"event":     evt.Type,
			"commentID": evt.CommentID,
		}).Error("failed to publish board event")
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
	}
}
