package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/eventlane/server/internal/api/pagination"
	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/domain/events"
	"github.com/eventlane/server/internal/domain/users"
)

type UsersHandler struct {
	Service *users.Service
	Env     string
}

func NewUsersHandler(service *users.Service, env string) *UsersHandler {
	return &UsersHandler{Service: service, Env: env}
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NewUserRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	user, err := h.Service.Create(r.Context(), users.CreateParams{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	})
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserDto(user))
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid pagination", err, h.Env)
		return
	}

	ids, err := parseIDsParam(r.URL.Query().Get("ids"))
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	items, err := h.Service.List(r.Context(), ids, page.From, page.Size)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	out := make([]UserDto, 0, len(items))
	for i := range items {
		out = append(out, toUserDto(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", h.Env)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), userID); err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIDsParam(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, events.FieldError{Field: "ids", Message: "must be positive numbers"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
