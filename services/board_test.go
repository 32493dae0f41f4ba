package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comment-board/board"
	"comment-board/internal"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []internal.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt internal.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []internal.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []internal.EventType
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func setupService(t *testing.T) (*BoardService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewBoardService(board.NewStore(), board.StubTranslator{}, pub)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, pub
}

var hello = board.NewComment{Username: "a", City: "b", Language: "en", Text: "Hello world!"}

func TestBoardService_Lifecycle(t *testing.T) {
	svc, pub := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateComment(ctx, hello)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)

	tr, err := svc.TranslateComment(ctx, c.ID, "fr")
	require.NoError(t, err)
	assert.Equal(t, "Hello world!", tr.Original)
	assert.Contains(t, tr.Translated, "fr")
	assert.Contains(t, tr.Translated, "Hello world!")

	likes, err := svc.LikeComment(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	out, err := svc.DislikeComment(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, board.DislikeOutcome{Dislikes: 1}, out)

	out, err = svc.DislikeComment(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, out.Removed)

	_, err = svc.TranslateComment(ctx, c.ID, "fr")
	assert.ErrorIs(t, err, board.ErrNotFound)
	_, err = svc.GetComment(ctx, c.ID)
	assert.ErrorIs(t, err, board.ErrNotFound)
	assert.Empty(t, svc.ListComments(ctx))

	assert.Equal(t, []internal.EventType{
		internal.EventCommentCreated,
		internal.EventCommentLiked,
		internal.EventCommentDisliked,
		internal.EventCommentRemoved,
	}, pub.types())

	created := pub.events[0]
	require.NotNil(t, created.Comment)
	assert.Equal(t, "Hello world!", created.Comment.Text)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), created.At)
	assert.Equal(t, 1, pub.events[2].Dislikes)
}

func TestBoardService_RejectedMutationsPublishNothing(t *testing.T) {
	svc, pub := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateComment(ctx, board.NewComment{Username: "a"})
	assert.ErrorIs(t, err, board.ErrMissingField)

	_, err = svc.CreateComment(ctx, board.NewComment{Username: "a", City: "b", Language: "en", Text: "héllo"})
	assert.ErrorIs(t, err, board.ErrForbiddenContent)

	_, err = svc.LikeComment(ctx, 42)
	assert.ErrorIs(t, err, board.ErrNotFound)

	_, err = svc.DislikeComment(ctx, 42)
	assert.ErrorIs(t, err, board.ErrNotFound)

	assert.Empty(t, pub.types())
}

func TestBoardService_PublishFailureDoesNotFailRequest(t *testing.T) {
	svc, pub := setupService(t)
	pub.err = errors.New("broker down")

	c, err := svc.CreateComment(context.Background(), hello)
	require.NoError(t, err)

	got, err := svc.GetComment(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
