package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/eventlane/server/internal/domain/events"
	"github.com/eventlane/server/internal/domain/users"
	"github.com/eventlane/server/internal/metrics"
	"github.com/rs/zerolog"
)

// EventSource is the subset of the events domain the request service needs.
type EventSource interface {
	GetByID(ctx context.Context, id int64) (*events.Event, error)
	GetByInitiatorAndID(ctx context.Context, initiatorID, eventID int64) (*events.Event, error)
}

// UserChecker verifies user existence.
type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo   Repository
	tx     TxRunner
	events EventSource
	users  UserChecker
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, tx TxRunner, eventSource EventSource, userChecker UserChecker, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		events: eventSource,
		users:  userChecker,
		logger: logger.With().Str("component", "requests").Logger(),
		now:    time.Now,
	}
}

func (s *Service) ListByRequester(ctx context.Context, userID int64) ([]Request, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByRequester(ctx, userID)
}

// Create submits a join request. Requests to unpublished or own events are
// rejected, as are duplicates and requests to full events. Events without
// moderation (or without a limit) confirm immediately.
func (s *Service) Create(ctx context.Context, userID, eventID int64) (*Request, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.Initiator.ID == userID {
		return nil, fmt.Errorf("%w: initiator cannot join own event", ErrConflict)
	}
	if event.State != events.StatePublished {
		return nil, fmt.Errorf("%w: event %d is not published", ErrConflict, eventID)
	}

	exists, err := s.repo.ExistsByEventAndRequester(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: duplicate participation request", ErrConflict)
	}

	status := StatusPending
	if !event.RequestModeration || event.ParticipantLimit == 0 {
		status = StatusConfirmed
	}

	var request *Request
	if event.ParticipantLimit > 0 {
		// The limit check and the insert must see a consistent confirmed
		// count, so both run under the event row lock.
		err = s.tx.WithTx(ctx, func(ctx context.Context, repo Repository) error {
			if err := repo.LockEvent(ctx, eventID); err != nil {
				return err
			}
			confirmed, err := repo.CountByEventAndStatus(ctx, eventID, StatusConfirmed)
			if err != nil {
				return err
			}
			if confirmed >= int64(event.ParticipantLimit) {
				return fmt.Errorf("%w: event %d", ErrLimitReached, eventID)
			}
			request, err = repo.Create(ctx, eventID, userID, status, s.now())
			return err
		})
		if err != nil {
			return nil, err
		}
	} else {
		request, err = s.repo.Create(ctx, eventID, userID, status, s.now())
		if err != nil {
			return nil, err
		}
	}
	metrics.ParticipationRequests.WithLabelValues(string(request.Status)).Inc()
	s.logger.Info().
		Int64("request_id", request.ID).
		Int64("event_id", eventID).
		Int64("requester_id", userID).
		Str("status", string(request.Status)).
		Msg("participation request created")
	return request, nil
}

// Cancel sets the requester's own request to CANCELED.
func (s *Service) Cancel(ctx context.Context, userID, requestID int64) (*Request, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RequesterID != userID {
		return nil, fmt.Errorf("%w: request %d does not belong to user %d", ErrNotFound, requestID, userID)
	}
	return s.repo.UpdateStatus(ctx, requestID, StatusCanceled)
}

// ListForEvent returns all join requests for an event owned by userID.
func (s *Service) ListForEvent(ctx context.Context, userID, eventID int64) ([]Request, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.events.GetByInitiatorAndID(ctx, userID, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}

// UpdateStatuses applies the owner's moderation decision. Confirmations stop
// when the participant limit is reached; the surplus of the submitted pending
// requests is rejected in the same transaction.
func (s *Service) UpdateStatuses(ctx context.Context, userID, eventID int64, update StatusUpdate) (*StatusUpdateResult, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	event, err := s.events.GetByInitiatorAndID(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if !event.RequestModeration || event.ParticipantLimit == 0 {
		return nil, fmt.Errorf("%w: event does not require request moderation", ErrConflict)
	}

	switch update.Status {
	case StatusConfirmed, StatusRejected:
	default:
		return nil, events.FieldError{Field: "status", Message: "must be CONFIRMED or REJECTED"}
	}

	result := &StatusUpdateResult{}
	err = s.tx.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		// Counting outside the lock would let two concurrent moderations
		// both see a free slot and overfill the event.
		if err := repo.LockEvent(ctx, eventID); err != nil {
			return err
		}
		confirmed, err := repo.CountByEventAndStatus(ctx, eventID, StatusConfirmed)
		if err != nil {
			return err
		}
		if confirmed >= int64(event.ParticipantLimit) {
			return fmt.Errorf("%w: event %d", ErrLimitReached, eventID)
		}

		pending, err := loadPending(ctx, repo, eventID, update.RequestIDs)
		if err != nil {
			return err
		}

		if update.Status == StatusRejected {
			rejected, err := repo.UpdateStatuses(ctx, requestIDs(pending), StatusRejected)
			if err != nil {
				return err
			}
			result.Rejected = rejected
			return nil
		}

		free := int64(event.ParticipantLimit) - confirmed
		toConfirm := pending
		var surplus []Request
		if int64(len(pending)) > free {
			toConfirm = pending[:free]
			surplus = pending[free:]
		}

		confirmedReqs, err := repo.UpdateStatuses(ctx, requestIDs(toConfirm), StatusConfirmed)
		if err != nil {
			return err
		}
		result.Confirmed = confirmedReqs

		if len(surplus) > 0 {
			rejected, err := repo.UpdateStatuses(ctx, requestIDs(surplus), StatusRejected)
			if err != nil {
				return err
			}
			result.Rejected = rejected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ParticipationRequests.WithLabelValues(string(StatusConfirmed)).Add(float64(len(result.Confirmed)))
	metrics.ParticipationRequests.WithLabelValues(string(StatusRejected)).Add(float64(len(result.Rejected)))
	s.logger.Info().
		Int64("event_id", eventID).
		Int("confirmed", len(result.Confirmed)).
		Int("rejected", len(result.Rejected)).
		Msg("participation requests moderated")
	return result, nil
}

// loadPending loads the submitted requests and verifies they all belong to
// the event and are still pending.
func loadPending(ctx context.Context, repo Repository, eventID int64, ids []int64) ([]Request, error) {
	found, err := repo.FindByEventAndIDs(ctx, eventID, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, fmt.Errorf("%w: some requests do not belong to event %d", ErrNotFound, eventID)
	}
	for _, request := range found {
		if request.Status != StatusPending {
			return nil, fmt.Errorf("%w: request %d is not pending", ErrConflict, request.ID)
		}
	}
	return found, nil
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

func requestIDs(items []Request) []int64 {
	ids := make([]int64, 0, len(items))
	for _, request := range items {
		ids = append(ids, request.ID)
	}
	return ids
}
