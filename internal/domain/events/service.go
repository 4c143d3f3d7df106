package events

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/eventlane/server/internal/domain/categories"
	"github.com/eventlane/server/internal/domain/users"
	"github.com/eventlane/server/internal/metrics"
	"github.com/eventlane/server/internal/sanitize"
	"github.com/rs/zerolog"
)

const (
	// Minimum lead time between publication and the event start when an
	// administrator changes the date.
	minAdminLeadTime = time.Hour
	// Minimum lead time for initiator-submitted dates.
	minUserLeadTime = 2 * time.Hour
)

// UserDirectory is the subset of the users domain the event service needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CategoryDirectory resolves category references on create and update.
type CategoryDirectory interface {
	GetByID(ctx context.Context, id int64) (*categories.Category, error)
}

// StatsSource records endpoint hits and resolves view counts from the
// statistics service.
type StatsSource interface {
	Hit(ctx context.Context, uri, ip string, at time.Time) error
	ViewsByURI(ctx context.Context, start, end time.Time, uris []string, unique bool) (map[string]int64, error)
}

// HitInfo identifies the public request being counted.
type HitInfo struct {
	URI string
	IP  string
}

type Service struct {
	repo       Repository
	users      UserDirectory
	categories CategoryDirectory
	stats      StatsSource
	logger     zerolog.Logger
	now        func() time.Time
}

func NewService(repo Repository, userDir UserDirectory, categoryDir CategoryDirectory, stats StatsSource, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		users:      userDir,
		categories: categoryDir,
		stats:      stats,
		logger:     logger.With().Str("component", "events").Logger(),
		now:        time.Now,
	}
}

// SearchAdmin returns full events matching the administrative filters,
// enriched with confirmed participation counts.
func (s *Service) SearchAdmin(ctx context.Context, filters AdminFilters, offset, limit int) ([]Event, error) {
	items, err := s.repo.SearchAdmin(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachConfirmedCounts(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateByAdmin applies an administrative update. Only pending events can be
// moderated; PUBLISH_EVENT and REJECT_EVENT drive the state machine.
func (s *Service) UpdateByAdmin(ctx context.Context, eventID int64, update AdminUpdate) (*Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.State == StatePublished || event.State == StateCanceled {
		return nil, fmt.Errorf("%w: only pending events can be updated, current state is %s", ErrConflict, event.State)
	}

	changed, err := s.merge(ctx, event, update.UpdateParams)
	if err != nil {
		return nil, err
	}

	if update.EventDate != nil {
		if update.EventDate.Before(s.now().Add(minAdminLeadTime)) {
			return nil, FieldError{Field: "eventDate", Message: "must be at least one hour after publication"}
		}
		event.EventDate = *update.EventDate
		changed = true
	}

	if update.StateAction != nil {
		switch *update.StateAction {
		case ActionPublishEvent:
			publishedOn := s.now()
			event.State = StatePublished
			event.PublishedOn = &publishedOn
		case ActionRejectEvent:
			event.State = StateCanceled
		default:
			return nil, FieldError{Field: "stateAction", Message: "must be PUBLISH_EVENT or REJECT_EVENT"}
		}
		changed = true
	}

	if !changed {
		return event, nil
	}

	saved, err := s.repo.Save(ctx, event)
	if err != nil {
		return nil, err
	}
	if update.StateAction != nil {
		metrics.EventStateTransitions.WithLabelValues(string(saved.State)).Inc()
	}
	s.logger.Info().Int64("event_id", saved.ID).Str("state", string(saved.State)).Msg("event updated by admin")
	return saved, nil
}

func (s *Service) ListByInitiator(ctx context.Context, userID int64, offset, limit int) ([]Event, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByInitiator(ctx, userID, offset, limit)
}

// Create registers a new event in the PENDING state.
func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Event, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if params.EventDate.Before(s.now().Add(minUserLeadTime)) {
		return nil, FieldError{Field: "eventDate", Message: "must be at least two hours in the future"}
	}
	category, err := s.categories.GetByID(ctx, params.CategoryID)
	if err != nil {
		return nil, err
	}

	params.Title = sanitize.Text(params.Title)
	params.Annotation = sanitize.Text(params.Annotation)
	params.Description = sanitize.HTML(params.Description)
	params.InitiatorID = user.ID
	params.CreatedOn = s.now()
	params.State = StatePending

	event, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	event.Category = *category
	event.Initiator = *user
	metrics.EventsCreated.Inc()
	s.logger.Info().Int64("event_id", event.ID).Int64("initiator_id", user.ID).Msg("event created")
	return event, nil
}

func (s *Service) GetByInitiator(ctx context.Context, userID, eventID int64) (*Event, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByInitiatorAndID(ctx, userID, eventID)
}

// UpdateByInitiator applies an initiator's update. Published events are
// immutable for the initiator; SEND_TO_REVIEW and CANCEL_REVIEW move the
// event between PENDING and CANCELED.
func (s *Service) UpdateByInitiator(ctx context.Context, userID, eventID int64, update UserUpdate) (*Event, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	event, err := s.repo.GetByInitiatorAndID(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if event.State == StatePublished {
		return nil, fmt.Errorf("%w: published events cannot be changed by the initiator", ErrConflict)
	}

	changed, err := s.merge(ctx, event, update.UpdateParams)
	if err != nil {
		return nil, err
	}

	if update.EventDate != nil {
		if update.EventDate.Before(s.now().Add(minUserLeadTime)) {
			return nil, FieldError{Field: "eventDate", Message: "must be at least two hours in the future"}
		}
		event.EventDate = *update.EventDate
		changed = true
	}

	if update.StateAction != nil {
		switch *update.StateAction {
		case ActionSendToReview:
			event.State = StatePending
		case ActionCancelReview:
			event.State = StateCanceled
		default:
			return nil, FieldError{Field: "stateAction", Message: "must be SEND_TO_REVIEW or CANCEL_REVIEW"}
		}
		changed = true
	}

	if !changed {
		return event, nil
	}
	saved, err := s.repo.Save(ctx, event)
	if err != nil {
		return nil, err
	}
	if update.StateAction != nil {
		metrics.EventStateTransitions.WithLabelValues(string(saved.State)).Inc()
	}
	return saved, nil
}

// SearchPublic returns published events matching the public filters, enriched
// with view and comment counts. The request is counted in the statistics
// service.
func (s *Service) SearchPublic(ctx context.Context, filters PublicFilters, offset, limit int, hit HitInfo) ([]Event, error) {
	s.recordHit(ctx, hit)

	// Without an explicit rangeStart only upcoming events are returned,
	// even when rangeEnd alone is given.
	if filters.RangeStart == nil {
		now := s.now()
		filters.RangeStart = &now
	}

	items, err := s.repo.SearchPublic(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	views, err := s.viewsFor(ctx, items)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load view stats")
	}

	ids := eventIDs(items)
	comments, err := s.repo.CommentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Views = views[items[i].ID]
		items[i].CommentCount = comments[items[i].ID]
	}

	if filters.Sort == SortViews {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Views > items[j].Views
		})
	}
	return items, nil
}

// GetPublished returns a published event by id. Unpublished events are
// reported as not found. The lookup is counted with unique IPs.
func (s *Service) GetPublished(ctx context.Context, eventID int64, hit HitInfo) (*Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.State != StatePublished {
		return nil, fmt.Errorf("%w: event %d is not published", ErrNotFound, eventID)
	}

	s.recordHit(ctx, hit)

	views, err := s.viewsFor(ctx, []Event{*event})
	if err != nil {
		s.logger.Warn().Err(err).Int64("event_id", eventID).Msg("failed to load view stats")
	}
	event.Views = views[event.ID]
	return event, nil
}

func (s *Service) merge(ctx context.Context, event *Event, params UpdateParams) (bool, error) {
	var category *categories.Category
	if params.CategoryID != nil {
		resolved, err := s.categories.GetByID(ctx, *params.CategoryID)
		if err != nil {
			return false, err
		}
		category = resolved
	}
	return applyUpdate(event, params, category), nil
}

func (s *Service) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return users.ErrNotFound
	}
	return nil
}

func (s *Service) attachConfirmedCounts(ctx context.Context, items []Event) error {
	if len(items) == 0 {
		return nil
	}
	counts, err := s.repo.ConfirmedCounts(ctx, eventIDs(items))
	if err != nil {
		return err
	}
	for i := range items {
		items[i].ConfirmedRequests = counts[items[i].ID]
	}
	return nil
}

func (s *Service) recordHit(ctx context.Context, hit HitInfo) {
	if s.stats == nil || hit.URI == "" {
		return
	}
	if err := s.stats.Hit(ctx, hit.URI, hit.IP, s.now()); err != nil {
		s.logger.Warn().Err(err).Str("uri", hit.URI).Msg("failed to record endpoint hit")
	}
}

// viewsFor resolves per-event view counts, querying from the earliest
// creation time among the events.
func (s *Service) viewsFor(ctx context.Context, items []Event) (map[int64]int64, error) {
	if s.stats == nil || len(items) == 0 {
		return nil, nil
	}

	earliest := items[0].CreatedOn
	uris := make([]string, 0, len(items))
	uriToID := make(map[string]int64, len(items))
	for _, event := range items {
		if event.CreatedOn.Before(earliest) {
			earliest = event.CreatedOn
		}
		uri := fmt.Sprintf("/events/%d", event.ID)
		uris = append(uris, uri)
		uriToID[uri] = event.ID
	}

	byURI, err := s.stats.ViewsByURI(ctx, earliest, s.now(), uris, true)
	if err != nil {
		return nil, err
	}

	views := make(map[int64]int64, len(byURI))
	for uri, hits := range byURI {
		if id, ok := uriToID[uri]; ok {
			views[id] = hits
		}
	}
	return views, nil
}

func eventIDs(items []Event) []int64 {
	ids := make([]int64, 0, len(items))
	for _, event := range items {
		ids = append(ids, event.ID)
	}
	return ids
}
