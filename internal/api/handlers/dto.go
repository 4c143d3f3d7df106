package handlers

import (
	"github.com/eventlane/server/internal/domain/categories"
	"github.com/eventlane/server/internal/domain/comments"
	"github.com/eventlane/server/internal/domain/datetime"
	"github.com/eventlane/server/internal/domain/events"
	"github.com/eventlane/server/internal/domain/requests"
	"github.com/eventlane/server/internal/domain/users"
)

type UserDto struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserShortDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type NewUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=250"`
	Email string `json:"email" validate:"required,email,min=6,max=254"`
}

type CategoryDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type NewCategoryDto struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type LocationDto struct {
	Lat float32 `json:"lat"`
	Lon float32 `json:"lon"`
}

type EventFullDto struct {
	ID                int64              `json:"id"`
	Title             string             `json:"title"`
	Annotation        string             `json:"annotation"`
	Description       string             `json:"description"`
	Category          CategoryDto        `json:"category"`
	Initiator         UserShortDto       `json:"initiator"`
	Location          LocationDto        `json:"location"`
	Paid              bool               `json:"paid"`
	ParticipantLimit  int32              `json:"participantLimit"`
	RequestModeration bool               `json:"requestModeration"`
	State             string             `json:"state"`
	CreatedOn         datetime.DateTime  `json:"createdOn"`
	EventDate         datetime.DateTime  `json:"eventDate"`
	PublishedOn       *datetime.DateTime `json:"publishedOn,omitempty"`
	ConfirmedRequests int64              `json:"confirmedRequests"`
	Views             int64              `json:"views"`
	Comments          int64              `json:"comments"`
}

type EventShortDto struct {
	ID                int64             `json:"id"`
	Title             string            `json:"title"`
	Annotation        string            `json:"annotation"`
	Category          CategoryDto       `json:"category"`
	Initiator         UserShortDto      `json:"initiator"`
	Paid              bool              `json:"paid"`
	EventDate         datetime.DateTime `json:"eventDate"`
	ConfirmedRequests int64             `json:"confirmedRequests"`
	Views             int64             `json:"views"`
	Comments          int64             `json:"comments"`
}

type NewEventDto struct {
	Title             string            `json:"title" validate:"required,min=3,max=120"`
	Annotation        string            `json:"annotation" validate:"required,min=20,max=2000"`
	Description       string            `json:"description" validate:"required,min=20,max=7000"`
	Category          int64             `json:"category" validate:"required,gt=0"`
	EventDate         datetime.DateTime `json:"eventDate" validate:"required"`
	Location          LocationDto       `json:"location"`
	Paid              bool              `json:"paid"`
	ParticipantLimit  int32             `json:"participantLimit" validate:"gte=0"`
	RequestModeration *bool             `json:"requestModeration"`
}

// UpdateEventRequest carries the optional PATCH fields shared by the admin
// and initiator endpoints. The accepted stateAction values differ per caller
// and are validated in the handler.
type UpdateEventRequest struct {
	Title             *string            `json:"title,omitempty" validate:"omitempty,max=120"`
	Annotation        *string            `json:"annotation,omitempty" validate:"omitempty,max=2000"`
	Description       *string            `json:"description,omitempty" validate:"omitempty,max=7000"`
	Category          *int64             `json:"category,omitempty" validate:"omitempty,gt=0"`
	EventDate         *datetime.DateTime `json:"eventDate,omitempty"`
	Location          *LocationDto       `json:"location,omitempty"`
	Paid              *bool              `json:"paid,omitempty"`
	ParticipantLimit  *int32             `json:"participantLimit,omitempty" validate:"omitempty,gte=0"`
	RequestModeration *bool              `json:"requestModeration,omitempty"`
	StateAction       *string            `json:"stateAction,omitempty"`
}

type ParticipationRequestDto struct {
	ID        int64             `json:"id"`
	Created   datetime.DateTime `json:"created"`
	Event     int64             `json:"event"`
	Requester int64             `json:"requester"`
	Status    string            `json:"status"`
}

type RequestStatusUpdateRequest struct {
	RequestIDs []int64 `json:"requestIds" validate:"required,min=1,dive,gt=0"`
	Status     string  `json:"status" validate:"required"`
}

type RequestStatusUpdateResult struct {
	ConfirmedRequests []ParticipationRequestDto `json:"confirmedRequests"`
	RejectedRequests  []ParticipationRequestDto `json:"rejectedRequests"`
}

type CommentDto struct {
	ID       int64             `json:"id"`
	Text     string            `json:"text"`
	EventID  int64             `json:"eventId"`
	AuthorID int64             `json:"authorId"`
	Created  datetime.DateTime `json:"created"`
}

type NewCommentDto struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func toUserDto(user *users.User) UserDto {
	return UserDto{ID: user.ID, Name: user.Name, Email: user.Email}
}

func toUserShortDto(user users.User) UserShortDto {
	return UserShortDto{ID: user.ID, Name: user.Name}
}

func toCategoryDto(cat *categories.Category) CategoryDto {
	return CategoryDto{ID: cat.ID, Name: cat.Name}
}

func toEventFullDto(event *events.Event) EventFullDto {
	return EventFullDto{
		ID:                event.ID,
		Title:             event.Title,
		Annotation:        event.Annotation,
		Description:       event.Description,
		Category:          toCategoryDto(&event.Category),
		Initiator:         toUserShortDto(event.Initiator),
		Location:          LocationDto{Lat: event.Location.Lat, Lon: event.Location.Lon},
		Paid:              event.Paid,
		ParticipantLimit:  event.ParticipantLimit,
		RequestModeration: event.RequestModeration,
		State:             string(event.State),
		CreatedOn:         datetime.FromTime(event.CreatedOn),
		EventDate:         datetime.FromTime(event.EventDate),
		PublishedOn:       datetime.FromTimePtr(event.PublishedOn),
		ConfirmedRequests: event.ConfirmedRequests,
		Views:             event.Views,
		Comments:          event.CommentCount,
	}
}

func toEventFullDtos(items []events.Event) []EventFullDto {
	out := make([]EventFullDto, 0, len(items))
	for i := range items {
		out = append(out, toEventFullDto(&items[i]))
	}
	return out
}

func toEventShortDto(event *events.Event) EventShortDto {
	return EventShortDto{
		ID:                event.ID,
		Title:             event.Title,
		Annotation:        event.Annotation,
		Category:          toCategoryDto(&event.Category),
		Initiator:         toUserShortDto(event.Initiator),
		Paid:              event.Paid,
		EventDate:         datetime.FromTime(event.EventDate),
		ConfirmedRequests: event.ConfirmedRequests,
		Views:             event.Views,
		Comments:          event.CommentCount,
	}
}

func toEventShortDtos(items []events.Event) []EventShortDto {
	out := make([]EventShortDto, 0, len(items))
	for i := range items {
		out = append(out, toEventShortDto(&items[i]))
	}
	return out
}

func toRequestDto(request *requests.Request) ParticipationRequestDto {
	return ParticipationRequestDto{
		ID:        request.ID,
		Created:   datetime.FromTime(request.Created),
		Event:     request.EventID,
		Requester: request.RequesterID,
		Status:    string(request.Status),
	}
}

func toRequestDtos(items []requests.Request) []ParticipationRequestDto {
	out := make([]ParticipationRequestDto, 0, len(items))
	for i := range items {
		out = append(out, toRequestDto(&items[i]))
	}
	return out
}

func toCommentDto(comment *comments.Comment) CommentDto {
	return CommentDto{
		ID:       comment.ID,
		Text:     comment.Text,
		EventID:  comment.EventID,
		AuthorID: comment.AuthorID,
		Created:  datetime.FromTime(comment.Created),
	}
}

func toCommentDtos(items []comments.Comment) []CommentDto {
	out := make([]CommentDto, 0, len(items))
	for i := range items {
		out = append(out, toCommentDto(&items[i]))
	}
	return out
}

func (d NewEventDto) toCreateParams() events.CreateParams {
	moderation := true
	if d.RequestModeration != nil {
		moderation = *d.RequestModeration
	}
	return events.CreateParams{
		Title:             d.Title,
		Annotation:        d.Annotation,
		Description:       d.Description,
		CategoryID:        d.Category,
		Location:          events.Location{Lat: d.Location.Lat, Lon: d.Location.Lon},
		Paid:              d.Paid,
		ParticipantLimit:  d.ParticipantLimit,
		RequestModeration: moderation,
		EventDate:         d.EventDate.Time(),
	}
}

func (d UpdateEventRequest) toUpdateParams() events.UpdateParams {
	params := events.UpdateParams{
		Title:             d.Title,
		Annotation:        d.Annotation,
		Description:       d.Description,
		CategoryID:        d.Category,
		Paid:              d.Paid,
		ParticipantLimit:  d.ParticipantLimit,
		RequestModeration: d.RequestModeration,
	}
	if d.EventDate != nil {
		date := d.EventDate.Time()
		params.EventDate = &date
	}
	if d.Location != nil {
		params.Location = &events.Location{Lat: d.Location.Lat, Lon: d.Location.Lon}
	}
	return params
}
