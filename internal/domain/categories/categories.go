package categories

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrNameTaken = errors.New("category name is already taken")
	// ErrInUse is returned when deleting a category that still has events.
	ErrInUse = errors.New("category has linked events")
)

type Category struct {
	ID   int64
	Name string
}

type Repository interface {
	Create(ctx context.Context, name string) (*Category, error)
	Update(ctx context.Context, id int64, name string) (*Category, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context, offset, limit int) ([]Category, error)
}
