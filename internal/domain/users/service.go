package users

import (
	"context"

	"github.com/rs/zerolog"
)

// Service handles administrative user management.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	user, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return user, nil
}

// List returns users by explicit ids, or a page of all users when ids is
// empty.
func (s *Service) List(ctx context.Context, ids []int64, offset, limit int) ([]User, error) {
	if len(ids) > 0 {
		return s.repo.ListByIDs(ctx, ids)
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
