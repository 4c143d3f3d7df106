package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventlane/server/internal/domain/categories"
	"github.com/jackc/pgx/v5"
)

var _ categories.Repository = (*CategoryRepository)(nil)

func (r *CategoryRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*categories.Category, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name)

	var cat categories.Category
	if err := row.Scan(&cat.ID, &cat.Name); err != nil {
		if isUniqueViolation(err) {
			return nil, categories.ErrNameTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &cat, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, name string) (*categories.Category, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE categories SET name = $2 WHERE id = $1 RETURNING id, name`, id, name)

	var cat categories.Category
	if err := row.Scan(&cat.ID, &cat.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, categories.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, categories.ErrNameTaken
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &cat, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return categories.ErrInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return categories.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*categories.Category, error) {
	row := r.queryer().QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id)

	var cat categories.Category
	if err := row.Scan(&cat.ID, &cat.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, categories.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &cat, nil
}

func (r *CategoryRepository) List(ctx context.Context, offset, limit int) ([]categories.Category, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, name FROM categories ORDER BY id OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := make([]categories.Category, 0)
	for rows.Next() {
		var cat categories.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return items, nil
}
