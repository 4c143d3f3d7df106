package handlers

import (
	"net/http"
	"strconv"

	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/domain/events"
	"github.com/eventlane/server/internal/domain/requests"
)

type RequestsHandler struct {
	Service *requests.Service
	Env     string
}

func NewRequestsHandler(service *requests.Service, env string) *RequestsHandler {
	return &RequestsHandler{Service: service, Env: env}
}

// ListOwn handles GET /users/{userId}/requests.
func (h *RequestsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}

	items, err := h.Service.ListByRequester(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestDtos(items))
}

// Create handles POST /users/{userId}/requests?eventId=.
func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}

	eventID, err := strconv.ParseInt(r.URL.Query().Get("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			events.FieldError{Field: "eventId", Message: "must be a positive number"}, h.Env)
		return
	}

	request, err := h.Service.Create(r.Context(), userID, eventID)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRequestDto(request))
}

// Cancel handles PATCH /users/{userId}/requests/{requestId}/cancel.
func (h *RequestsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "requestId", h.Env)
	if !ok {
		return
	}

	request, err := h.Service.Cancel(r.Context(), userID, requestID)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestDto(request))
}

// ListForEvent handles GET /users/{userId}/events/{eventId}/requests.
func (h *RequestsHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventId", h.Env)
	if !ok {
		return
	}

	items, err := h.Service.ListForEvent(r.Context(), userID, eventID)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestDtos(items))
}

// UpdateStatuses handles PATCH /users/{userId}/events/{eventId}/requests.
func (h *RequestsHandler) UpdateStatuses(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventId", h.Env)
	if !ok {
		return
	}

	var req RequestStatusUpdateRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	result, err := h.Service.UpdateStatuses(r.Context(), userID, eventID, requests.StatusUpdate{
		RequestIDs: req.RequestIDs,
		Status:     requests.Status(req.Status),
	})
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, RequestStatusUpdateResult{
		ConfirmedRequests: toRequestDtos(result.Confirmed),
		RejectedRequests:  toRequestDtos(result.Rejected),
	})
}
