package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField     = errors.New("all fields are required")
	ErrForbiddenContent = errors.New("comments with special characters are blocked")
	ErrNotFound         = errors.New("comment not found")
)

// MissingFieldError lists the required fields that were absent or empty.
type MissingFieldError struct {
	Fields []string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrMissingField, strings.Join(e.Fields, ", "))
}

func (e MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// ErrCommentNotFound is returned for ids that were never assigned or whose
// comment has been removed.
type ErrCommentNotFound struct {
	ID int
}

func (e ErrCommentNotFound) Error() string {
	return fmt.Sprintf("comment not found by id: %d", e.ID)
}

func (e ErrCommentNotFound) Unwrap() error {
	return ErrNotFound
}
