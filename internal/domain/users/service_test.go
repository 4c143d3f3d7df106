package users

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createFn    func(ctx context.Context, params CreateParams) (*User, error)
	getByIDFn   func(ctx context.Context, id int64) (*User, error)
	listByIDsFn func(ctx context.Context, ids []int64) ([]User, error)
	listFn      func(ctx context.Context, offset, limit int) ([]User, error)
	deleteFn    func(ctx context.Context, id int64) error
	existsFn    func(ctx context.Context, id int64) (bool, error)
}

func (m *mockRepository) Create(ctx context.Context, params CreateParams) (*User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListByIDs(ctx context.Context, ids []int64) ([]User, error) {
	if m.listByIDsFn != nil {
		return m.listByIDsFn(ctx, ids)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) List(ctx context.Context, offset, limit int) ([]User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

func TestListByIDsBypassesPaging(t *testing.T) {
	listCalled := false
	repo := &mockRepository{
		listByIDsFn: func(ctx context.Context, ids []int64) ([]User, error) {
			return []User{{ID: 1}, {ID: 3}}, nil
		},
		listFn: func(ctx context.Context, offset, limit int) ([]User, error) {
			listCalled = true
			return nil, nil
		},
	}
	service := NewService(repo, zerolog.Nop())

	items, err := service.List(context.Background(), []int64{1, 3}, 0, 10)

	require.NoError(t, err)
	require.Len(t, items, 2)
	require.False(t, listCalled)
}

func TestListWithoutIDsPages(t *testing.T) {
	var gotOffset, gotLimit int
	repo := &mockRepository{
		listFn: func(ctx context.Context, offset, limit int) ([]User, error) {
			gotOffset, gotLimit = offset, limit
			return []User{{ID: 1}}, nil
		},
	}
	service := NewService(repo, zerolog.Nop())

	items, err := service.List(context.Background(), nil, 20, 10)

	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 20, gotOffset)
	require.Equal(t, 10, gotLimit)
}

func TestCreatePropagatesConflict(t *testing.T) {
	repo := &mockRepository{
		createFn: func(ctx context.Context, params CreateParams) (*User, error) {
			return nil, ErrEmailTaken
		},
	}
	service := NewService(repo, zerolog.Nop())

	_, err := service.Create(context.Background(), CreateParams{Name: "Ann", Email: "ann@example.com"})

	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeletePropagatesNotFound(t *testing.T) {
	repo := &mockRepository{
		deleteFn: func(ctx context.Context, id int64) error {
			return ErrNotFound
		},
	}
	service := NewService(repo, zerolog.Nop())

	err := service.Delete(context.Background(), 99)

	require.ErrorIs(t, err, ErrNotFound)
}
