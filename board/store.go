package board

import (
	"regexp"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DefaultDislikeThreshold is the dislike count at which a comment is removed.
const DefaultDislikeThreshold = 2

// Store is the in-memory registry of comments. It owns every Comment record
// and the id counter; callers only ever see copies.
type Store struct {
	mu        sync.RWMutex
	comments  []Comment
	nextID    int
	threshold int
	validate  *validator.Validate
}

// Option configures a Store.
type Option func(*Store)

// WithDislikeThreshold overrides the removal threshold. Values below 1 are ignored.
func WithDislikeThreshold(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.threshold = n
		}
	}
}

// WithContentPattern replaces the text allow-list.
func WithContentPattern(pattern *regexp.Regexp) Option {
	return func(s *Store) {
		if pattern != nil {
			s.validate = newValidator(pattern)
		}
	}
}

// NewStore creates an empty store. The first comment gets id 1.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nextID:    1,
		threshold: DefaultDislikeThreshold,
		validate:  newValidator(DefaultAllowedText),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the dislike count that removes a comment.
func (s *Store) Threshold() int {
	return s.threshold
}

// Add validates c and appends it to the board.
func (s *Store) Add(c NewComment) (Comment, error) {
	if err := validate(s.validate, c); err != nil {
		return Comment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comment := Comment{
		ID:       s.nextID,
		Username: c.Username,
		City:     c.City,
		Language: c.Language,
		Text:     c.Text,
	}
	s.nextID++
	s.comments = append(s.comments, comment)
	return comment, nil
}

// List returns a copy of all comments in insertion order.
func (s *Store) List() []Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// Len returns the number of comments currently on the board.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.comments)
}

func (s *Store) FindByID(id int) (Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Comment{}, ErrCommentNotFound{ID: id}
	}
	return s.comments[i], nil
}

// Like increments the like counter and returns the new count.
func (s *Store) Like(id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, ErrCommentNotFound{ID: id}
	}
	s.comments[i].Likes++
	return s.comments[i].Likes, nil
}

// Dislike increments the dislike counter. Once the counter reaches the
// threshold the comment is deleted in the same call.
func (s *Store) Dislike(id int) (DislikeOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return DislikeOutcome{}, ErrCommentNotFound{ID: id}
	}

	s.comments[i].Dislikes++
	if s.comments[i].Dislikes >= s.threshold {
		s.comments = slices.Delete(s.comments, i, i+1)
		return DislikeOutcome{Removed: true}, nil
	}
	return DislikeOutcome{Dislikes: s.comments[i].Dislikes}, nil
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.comments, func(c Comment) bool {
		return c.ID == id
	})
}
