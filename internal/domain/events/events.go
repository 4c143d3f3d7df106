package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventlane/server/internal/domain/categories"
	"github.com/eventlane/server/internal/domain/users"
)

var (
	ErrNotFound = errors.New("event not found")
	ErrConflict = errors.New("event state conflict")
)

// FieldError reports an invalid request parameter and maps to a 400 response.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// State is the moderation state of an event.
type State string

const (
	StatePending   State = "PENDING"
	StatePublished State = "PUBLISHED"
	StateCanceled  State = "CANCELED"
)

// AdminStateAction is a state transition requested by an administrator.
type AdminStateAction string

const (
	ActionPublishEvent AdminStateAction = "PUBLISH_EVENT"
	ActionRejectEvent  AdminStateAction = "REJECT_EVENT"
)

// UserStateAction is a state transition requested by the event initiator.
type UserStateAction string

const (
	ActionSendToReview UserStateAction = "SEND_TO_REVIEW"
	ActionCancelReview UserStateAction = "CANCEL_REVIEW"
)

type Location struct {
	Lat float32
	Lon float32
}

type Event struct {
	ID                int64
	Title             string
	Annotation        string
	Description       string
	Category          categories.Category
	Initiator         users.User
	Location          Location
	Paid              bool
	ParticipantLimit  int32
	RequestModeration bool
	State             State
	CreatedOn         time.Time
	EventDate         time.Time
	PublishedOn       *time.Time

	// Derived fields, populated by service-level enrichment.
	ConfirmedRequests int64
	Views             int64
	CommentCount      int64
}

type CreateParams struct {
	Title             string
	Annotation        string
	Description       string
	CategoryID        int64
	InitiatorID       int64
	Location          Location
	Paid              bool
	ParticipantLimit  int32
	RequestModeration bool
	EventDate         time.Time
	CreatedOn         time.Time
	State             State
}

// UpdateParams carries the optional fields of a PATCH request. A nil field
// means "leave unchanged"; blank strings are also treated as no change.
type UpdateParams struct {
	Title             *string
	Annotation        *string
	Description       *string
	CategoryID        *int64
	Location          *Location
	Paid              *bool
	ParticipantLimit  *int32
	RequestModeration *bool
	EventDate         *time.Time
}

type AdminUpdate struct {
	UpdateParams
	StateAction *AdminStateAction
}

type UserUpdate struct {
	UpdateParams
	StateAction *UserStateAction
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Event, error)
	Save(ctx context.Context, event *Event) (*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	GetByInitiatorAndID(ctx context.Context, initiatorID, eventID int64) (*Event, error)
	ListByInitiator(ctx context.Context, initiatorID int64, offset, limit int) ([]Event, error)
	SearchAdmin(ctx context.Context, filters AdminFilters, offset, limit int) ([]Event, error)
	SearchPublic(ctx context.Context, filters PublicFilters, offset, limit int) ([]Event, error)
	ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
	CommentCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
}
