package handlers

import (
	"net/http"
	"strings"

	"github.com/eventlane/server/internal/api/pagination"
	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/domain/categories"
)

type CategoriesHandler struct {
	Service *categories.Service
	Env     string
}

func NewCategoriesHandler(service *categories.Service, env string) *CategoriesHandler {
	return &CategoriesHandler{Service: service, Env: env}
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NewCategoryDto
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	cat, err := h.Service.Create(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryDto(cat))
}

func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "catId", h.Env)
	if !ok {
		return
	}

	var req NewCategoryDto
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	cat, err := h.Service.Update(r.Context(), catID, strings.TrimSpace(req.Name))
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryDto(cat))
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "catId", h.Env)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), catID); err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid pagination", err, h.Env)
		return
	}

	items, err := h.Service.List(r.Context(), page.From, page.Size)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	out := make([]CategoryDto, 0, len(items))
	for i := range items {
		out = append(out, toCategoryDto(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "catId", h.Env)
	if !ok {
		return
	}

	cat, err := h.Service.GetByID(r.Context(), catID)
	if err != nil {
		writeDomainError(w, r, h.Env, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryDto(cat))
}
