package handlers

import (
	"net/http"
	"strconv"

	"github.com/eventlane/server/internal/api/pagination"
	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/domain/comments"
	"github.com/eventlane/server/internal/domain/events"
)

type CommentsHandler struct {
	Service *comments.Service
	Env     string
}

func NewCommentsHandler(service *comments.Service, env string) *CommentsHandler {
	return &CommentsHandler{Service: service, Env: env}
}

// Create handles POST /users/{userId}/comments?eventId=.
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req NewCommentDto
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	comment, err := h.Service.Create(r.Context(), userID, eventID, req.Text)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentDto(comment))
}

// Update handles PATCH /users/{userId}/comments/{commentId}.
func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentId", h.Env)
	if !ok {
		return
	}

	var req NewCommentDto
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	comment, err := h.Service.Update(r.Context(), userID, commentID, req.Text)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentDto(comment))
}

// Delete handles DELETE /users/{userId}/comments/{commentId}.
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentId", h.Env)
	if !ok {
		return
	}

	if err := h.Service.DeleteByAuthor(r.Context(), userID, commentID); err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAdmin handles DELETE /admin/comments/{commentId}.
func (h *CommentsHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "commentId", h.Env)
	if !ok {
		return
	}

	if err := h.Service.DeleteByAdmin(r.Context(), commentID); err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPublic handles GET /events/{id}/comments.
func (h *CommentsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id", h.Env)
	if !ok {
		return
	}

	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid pagination", err, h.Env)
		return
	}

	items, err := h.Service.ListForEvent(r.Context(), eventID, page.From, page.Size)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentDtos(items))
}
