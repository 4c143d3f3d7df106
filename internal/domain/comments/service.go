package comments

import (
	"context"
	"fmt"
	"time"

	"github.com/eventlane/server/internal/domain/events"
	"github.com/eventlane/server/internal/domain/users"
	"github.com/eventlane/server/internal/sanitize"
	"github.com/rs/zerolog"
)

// EventSource resolves the commented event.
type EventSource interface {
	GetByID(ctx context.Context, id int64) (*events.Event, error)
}

// UserChecker verifies author existence.
type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo   Repository
	events EventSource
	users  UserChecker
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, eventSource EventSource, userChecker UserChecker, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: eventSource,
		users:  userChecker,
		logger: logger.With().Str("component", "comments").Logger(),
		now:    time.Now,
	}
}

// Create adds a comment to a published event. The text is sanitized before
// storage.
func (s *Service) Create(ctx context.Context, userID, eventID int64, text string) (*Comment, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.State != events.StatePublished {
		return nil, fmt.Errorf("%w: comments are allowed on published events only", events.ErrConflict)
	}

	comment, err := s.repo.Create(ctx, eventID, userID, sanitize.Text(text), s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("comment_id", comment.ID).Int64("event_id", eventID).Msg("comment created")
	return comment, nil
}

// Update replaces the text of the author's own comment.
func (s *Service) Update(ctx context.Context, userID, commentID int64, text string) (*Comment, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, fmt.Errorf("comment %d: %w", commentID, ErrNotAuthor)
	}
	return s.repo.Update(ctx, commentID, sanitize.Text(text))
}

// DeleteByAuthor removes the author's own comment.
func (s *Service) DeleteByAuthor(ctx context.Context, userID, commentID int64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return fmt.Errorf("comment %d: %w", commentID, ErrNotAuthor)
	}
	return s.repo.Delete(ctx, commentID)
}

// DeleteByAdmin removes any comment.
func (s *Service) DeleteByAdmin(ctx context.Context, commentID int64) error {
	if _, err := s.repo.GetByID(ctx, commentID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, commentID); err != nil {
		return err
	}
	s.logger.Info().Int64("comment_id", commentID).Msg("comment deleted by admin")
	return nil
}

// ListForEvent returns a page of comments for a published event.
func (s *Service) ListForEvent(ctx context.Context, eventID int64, offset, limit int) ([]Comment, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.State != events.StatePublished {
		return nil, fmt.Errorf("%w: event %d is not published", events.ErrNotFound, eventID)
	}
	return s.repo.ListByEvent(ctx, eventID, offset, limit)
}

func (s *Service) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %d: %w", userID, users.ErrNotFound)
	}
	return nil
}
