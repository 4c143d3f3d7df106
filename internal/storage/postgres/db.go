package postgres

import (
	"context"
	"fmt"

	"github.com/eventlane/server/internal/domain/categories"
	"github.com/eventlane/server/internal/domain/comments"
	"github.com/eventlane/server/internal/domain/events"
	"github.com/eventlane/server/internal/domain/requests"
	"github.com/eventlane/server/internal/domain/users"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository aggregates the per-entity repositories over one pool.
type Repository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Users() users.Repository {
	return &UserRepository{pool: r.pool, tx: r.tx}
}

func (r *Repository) Categories() categories.Repository {
	return &CategoryRepository{pool: r.pool, tx: r.tx}
}

func (r *Repository) Events() events.Repository {
	return &EventRepository{pool: r.pool, tx: r.tx}
}

func (r *Repository) Requests() *RequestRepository {
	return &RequestRepository{pool: r.pool, tx: r.tx}
}

func (r *Repository) Comments() comments.Repository {
	return &CommentRepository{pool: r.pool, tx: r.tx}
}

type UserRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

type CategoryRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

type EventRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

type RequestRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

type CommentRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

// WithTx runs fn against a transaction-bound request repository, committing
// on success. It implements the requests domain's TxRunner.
func (r *RequestRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo requests.Repository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	wrapped := &RequestRepository{pool: r.pool, tx: tx}
	if err := fn(ctx, wrapped); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
