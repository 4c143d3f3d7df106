package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email is already taken")
)

type User struct {
	ID    int64
	Name  string
	Email string
}

type CreateParams struct {
	Name  string
	Email string
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]User, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
