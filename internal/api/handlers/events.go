package handlers

import (
	"net/http"

	"github.com/eventlane/server/internal/api/middleware"
	"github.com/eventlane/server/internal/api/pagination"
	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/domain/events"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

// SearchAdmin handles GET /admin/events.
func (h *EventsHandler) SearchAdmin(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid pagination", err, h.Env)
		return
	}

	filters, err := events.ParseAdminFilters(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	items, err := h.Service.SearchAdmin(r.Context(), filters, page.From, page.Size)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventFullDtos(items))
}

// UpdateAdmin handles PATCH /admin/events/{eventId}.
func (h *EventsHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventId", h.Env)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	update := events.AdminUpdate{UpdateParams: req.toUpdateParams()}
	if req.StateAction != nil {
		action := events.AdminStateAction(*req.StateAction)
		switch action {
		case events.ActionPublishEvent, events.ActionRejectEvent:
			update.StateAction = &action
		default:
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
				events.FieldError{Field: "stateAction", Message: "must be PUBLISH_EVENT or REJECT_EVENT"}, h.Env)
			return
		}
	}

	event, err := h.Service.UpdateByAdmin(r.Context(), eventID, update)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventFullDto(event))
}

// ListOwn handles GET /users/{userId}/events.
func (h *EventsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}

	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid pagination", err, h.Env)
		return
	}

	items, err := h.Service.ListByInitiator(r.Context(), userID, page.From, page.Size)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventShortDtos(items))
}

// Create handles POST /users/{userId}/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}

	var req NewEventDto
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	event, err := h.Service.Create(r.Context(), userID, req.toCreateParams())
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventFullDto(event))
}

// GetOwn handles GET /users/{userId}/events/{eventId}.
func (h *EventsHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventId", h.Env)
	if !ok {
		return
	}

	event, err := h.Service.GetByInitiator(r.Context(), userID, eventID)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventFullDto(event))
}

// UpdateOwn handles PATCH /users/{userId}/events/{eventId}.
func (h *EventsHandler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventId", h.Env)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	update := events.UserUpdate{UpdateParams: req.toUpdateParams()}
	if req.StateAction != nil {
		action := events.UserStateAction(*req.StateAction)
		switch action {
		case events.ActionSendToReview, events.ActionCancelReview:
			update.StateAction = &action
		default:
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
				events.FieldError{Field: "stateAction", Message: "must be SEND_TO_REVIEW or CANCEL_REVIEW"}, h.Env)
			return
		}
	}

	event, err := h.Service.UpdateByInitiator(r.Context(), userID, eventID, update)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventFullDto(event))
}

// SearchPublic handles GET /events.
func (h *EventsHandler) SearchPublic(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid pagination", err, h.Env)
		return
	}

	filters, err := events.ParsePublicFilters(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	items, err := h.Service.SearchPublic(r.Context(), filters, page.From, page.Size, hitInfo(r))
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventShortDtos(items))
}

// GetPublic handles GET /events/{id}.
func (h *EventsHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id", h.Env)
	if !ok {
		return
	}

	event, err := h.Service.GetPublished(r.Context(), eventID, hitInfo(r))
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventFullDto(event))
}

func hitInfo(r *http.Request) events.HitInfo {
	return events.HitInfo{
		URI: r.URL.Path,
		IP:  middleware.ClientIP(r),
	}
}
