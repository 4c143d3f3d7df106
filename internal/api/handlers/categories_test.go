package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eventlane/server/internal/domain/categories"
)

type mockCategoriesRepo struct {
	createFn  func(ctx context.Context, name string) (*categories.Category, error)
	updateFn  func(ctx context.Context, id int64, name string) (*categories.Category, error)
	deleteFn  func(ctx context.Context, id int64) error
	getByIDFn func(ctx context.Context, id int64) (*categories.Category, error)
	listFn    func(ctx context.Context, offset, limit int) ([]categories.Category, error)
}

func (m *mockCategoriesRepo) Create(ctx context.Context, name string) (*categories.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCategoriesRepo) Update(ctx context.Context, id int64, name string) (*categories.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, name)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCategoriesRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockCategoriesRepo) GetByID(ctx context.Context, id int64) (*categories.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCategoriesRepo) List(ctx context.Context, offset, limit int) ([]categories.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, errors.New("not implemented")
}

func categoriesMux(repo categories.Repository) *http.ServeMux {
	handler := NewCategoriesHandler(categories.NewService(repo, zerolog.Nop()), "test")
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/categories", handler.Create)
	mux.HandleFunc("PATCH /admin/categories/{catId}", handler.Update)
	mux.HandleFunc("DELETE /admin/categories/{catId}", handler.Delete)
	mux.HandleFunc("GET /categories", handler.List)
	mux.HandleFunc("GET /categories/{catId}", handler.Get)
	return mux
}

func TestCreateCategory(t *testing.T) {
	repo := &mockCategoriesRepo{
		createFn: func(ctx context.Context, name string) (*categories.Category, error) {
			return &categories.Category{ID: 1, Name: name}, nil
		},
	}
	mux := categoriesMux(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/categories", strings.NewReader(`{"name":"  Music "}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Music"`)
}

func TestCreateCategoryValidation(t *testing.T) {
	mux := categoriesMux(&mockCategoriesRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/categories", strings.NewReader(`{"name":""}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestCreateCategoryNameTaken(t *testing.T) {
	repo := &mockCategoriesRepo{
		createFn: func(ctx context.Context, name string) (*categories.Category, error) {
			return nil, categories.ErrNameTaken
		},
	}
	mux := categoriesMux(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/categories", strings.NewReader(`{"name":"Music"}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateCategoryBadID(t *testing.T) {
	mux := categoriesMux(&mockCategoriesRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/admin/categories/abc", strings.NewReader(`{"name":"Music"}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := &mockCategoriesRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return categories.ErrInUse
		},
	}
	mux := categoriesMux(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/admin/categories/3", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteCategory(t *testing.T) {
	repo := &mockCategoriesRepo{
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	mux := categoriesMux(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/admin/categories/3", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetCategoryNotFound(t *testing.T) {
	repo := &mockCategoriesRepo{
		getByIDFn: func(ctx context.Context, id int64) (*categories.Category, error) {
			return nil, categories.ErrNotFound
		},
	}
	mux := categoriesMux(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/categories/99", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCategoriesPagination(t *testing.T) {
	var gotOffset, gotLimit int
	repo := &mockCategoriesRepo{
		listFn: func(ctx context.Context, offset, limit int) ([]categories.Category, error) {
			gotOffset, gotLimit = offset, limit
			return []categories.Category{{ID: 1, Name: "Music"}}, nil
		},
	}
	mux := categoriesMux(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/categories?from=20&size=5", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 20, gotOffset)
	require.Equal(t, 5, gotLimit)
}
