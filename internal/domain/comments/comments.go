package comments

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("comment not found")
	// ErrNotAuthor is returned when a user edits or deletes someone else's
	// comment.
	ErrNotAuthor = errors.New("user is not the comment author")
)

type Comment struct {
	ID       int64
	Text     string
	EventID  int64
	AuthorID int64
	Created  time.Time
}

type Repository interface {
	Create(ctx context.Context, eventID, authorID int64, text string, created time.Time) (*Comment, error)
	Update(ctx context.Context, id int64, text string) (*Comment, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Comment, error)
	ListByEvent(ctx context.Context, eventID int64, offset, limit int) ([]Comment, error)
}
