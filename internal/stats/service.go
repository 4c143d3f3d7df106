package stats

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "stats").Logger(),
	}
}

func (s *Service) Record(ctx context.Context, hit EndpointHit) error {
	if err := s.repo.SaveHit(ctx, hit); err != nil {
		return err
	}
	s.logger.Debug().Str("app", hit.App).Str("uri", hit.URI).Msg("endpoint hit recorded")
	return nil
}

func (s *Service) Stats(ctx context.Context, query StatsQuery) ([]ViewStats, error) {
	if query.Start.IsZero() || query.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidRange)
	}
	if query.End.Before(query.Start) {
		return nil, fmt.Errorf("%w: end must not be before start", ErrInvalidRange)
	}
	return s.repo.Stats(ctx, query)
}
